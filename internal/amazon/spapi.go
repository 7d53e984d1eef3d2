package amazon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mfigueredo/amazon-sp-proxy/internal/metrics"
)

const (
	// includedData selects the catalog attribute sets the frontend consumes.
	includedData = "salesRanks,productTypes,identifiers,summaries,images"

	catalogPageSize   = 20
	catalogAPIVersion = "2022-04-01"

	defaultSPTimeout = 10 * time.Second
)

// SPClient implements CatalogClient against the Selling Partner API. Every
// call resolves a valid access token for the requesting user through the
// credential lifecycle manager before hitting Amazon.
type SPClient struct {
	tokens AccessTokenSource
	client *http.Client
}

// SPOption configures the SPClient.
type SPOption func(*SPClient)

// WithSPHTTPClient overrides the default HTTP client.
func WithSPHTTPClient(hc *http.Client) SPOption {
	return func(c *SPClient) {
		c.client = hc
	}
}

// NewSPClient creates a Selling Partner API client.
func NewSPClient(tokens AccessTokenSource, opts ...SPOption) *SPClient {
	c := &SPClient{
		tokens: tokens,
		client: &http.Client{Timeout: defaultSPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchCatalog queries the Catalog Items API by keywords. A non-empty
// PageToken fetches that page instead of the first.
func (c *SPClient) SearchCatalog(
	ctx context.Context,
	req CatalogSearchRequest,
) (*CatalogSearchResponse, error) {
	params := url.Values{}
	params.Set("marketplaceIds", req.MarketplaceID)
	params.Set("keywords", req.Keywords)
	params.Set("includedData", includedData)
	params.Set("pageSize", fmt.Sprint(catalogPageSize))
	if req.PageToken != "" {
		params.Set("pageToken", req.PageToken)
	}

	u := fmt.Sprintf(
		"%s/catalog/%s/items?%s",
		req.Endpoint, catalogAPIVersion, params.Encode(),
	)

	resp := &CatalogSearchResponse{}
	if err := c.fetch(ctx, "search_catalog", req.UserID, http.MethodGet, u, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetItem retrieves a single catalog item by ASIN.
func (c *SPClient) GetItem(
	ctx context.Context,
	req ItemRequest,
) (*CatalogItem, error) {
	params := url.Values{}
	params.Set("marketplaceIds", req.MarketplaceID)
	params.Set("includedData", includedData)

	u := fmt.Sprintf(
		"%s/catalog/%s/items/%s?%s",
		req.Endpoint, catalogAPIVersion, url.PathEscape(req.ASIN), params.Encode(),
	)

	item := &CatalogItem{}
	if err := c.fetch(ctx, "get_item", req.UserID, http.MethodGet, u, nil, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItemOffers retrieves new-condition offers for an item.
func (c *SPClient) GetItemOffers(
	ctx context.Context,
	req ItemRequest,
) (*ItemOffersResponse, error) {
	params := url.Values{}
	params.Set("MarketplaceId", req.MarketplaceID)
	params.Set("ItemCondition", "New")

	u := fmt.Sprintf(
		"%s/products/pricing/v0/items/%s/offers?%s",
		req.Endpoint, url.PathEscape(req.ASIN), params.Encode(),
	)

	resp := &ItemOffersResponse{}
	if err := c.fetch(ctx, "get_item_offers", req.UserID, http.MethodGet, u, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// feesEstimatePayload is the request body for a fees estimate.
type feesEstimatePayload struct {
	FeesEstimateRequest feesEstimateBody `json:"FeesEstimateRequest"`
}

type feesEstimateBody struct {
	MarketplaceID       string              `json:"MarketplaceId"`
	IDType              string              `json:"IdType"`
	IDValue             string              `json:"IdValue"`
	Identifier          string              `json:"Identifier"`
	IsAmazonFulfilled   bool                `json:"IsAmazonFulfilled"`
	PriceToEstimateFees PriceToEstimateFees `json:"PriceToEstimateFees"`
}

// GetFeesEstimate requests a fulfillment fees estimate for an ASIN at the
// given listing price. Prices are quoted in EUR with free shipping, matching
// the frontend's fee calculator.
func (c *SPClient) GetFeesEstimate(
	ctx context.Context,
	req FeesEstimateRequest,
) (*FeesEstimateResponse, error) {
	payload := feesEstimatePayload{
		FeesEstimateRequest: feesEstimateBody{
			MarketplaceID:     req.MarketplaceID,
			IDType:            "ASIN",
			IDValue:           req.ASIN,
			Identifier:        req.ASIN,
			IsAmazonFulfilled: true,
			PriceToEstimateFees: PriceToEstimateFees{
				ListingPrice: Money{CurrencyCode: "EUR", Amount: req.Price},
				Shipping:     Money{CurrencyCode: "EUR", Amount: 0},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling fees request: %w", err)
	}

	u := fmt.Sprintf(
		"%s/products/fees/v0/items/%s/feesEstimate",
		req.Endpoint, url.PathEscape(req.ASIN),
	)

	resp := &FeesEstimateResponse{}
	if err := c.fetch(ctx, "get_fees_estimate", req.UserID, http.MethodPost, u, body, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// fetch performs one authenticated SP-API request and decodes the JSON
// response into dst.
func (c *SPClient) fetch(
	ctx context.Context,
	operation, userID, method, u string,
	body []byte,
	dst any,
) error {
	token, err := c.tokens.AccessToken(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolving credentials: %w", err)
	}

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-amz-access-token", token)

	metrics.AmazonAPICallsTotal.WithLabelValues(operation).Inc()
	start := time.Now()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("executing %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	metrics.AmazonAPIDuration.Observe(time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf(
			"Amazon API error (status %d): %s",
			resp.StatusCode,
			string(respBody),
		)
	}

	if err := json.Unmarshal(respBody, dst); err != nil {
		return fmt.Errorf("parsing %s response: %w", operation, err)
	}

	return nil
}

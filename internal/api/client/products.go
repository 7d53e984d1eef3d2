package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/mfigueredo/amazon-sp-proxy/internal/amazon"
)

// SearchResponse wraps a catalog search result.
type SearchResponse struct {
	Success bool                          `json:"success"`
	Data    *amazon.CatalogSearchResponse `json:"data"`
}

// ProductResponse wraps a single catalog item.
type ProductResponse struct {
	Success bool                `json:"success"`
	Data    *amazon.CatalogItem `json:"data"`
}

// OffersResponse wraps an item offers result.
type OffersResponse struct {
	Success bool                       `json:"success"`
	Data    *amazon.ItemOffersResponse `json:"data"`
}

// FeesResponse wraps a fees estimate result.
type FeesResponse struct {
	Success bool                         `json:"success"`
	Data    *amazon.FeesEstimateResponse `json:"data"`
}

// SearchParams defines query parameters for catalog searches.
type SearchParams struct {
	Keywords  string
	Domain    string
	PageToken string
}

func (p *SearchParams) encode() string {
	q := url.Values{}
	q.Set("keywords", p.Keywords)
	if p.Domain != "" {
		q.Set("domain", p.Domain)
	}
	if p.PageToken != "" {
		q.Set("pageToken", p.PageToken)
	}
	return q.Encode()
}

// SearchProducts returns the first page of catalog search results.
func (c *Client) SearchProducts(ctx context.Context, params *SearchParams) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get(ctx, "/api/v1/products?"+params.encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// NextPage returns the result page after params.PageToken.
func (c *Client) NextPage(ctx context.Context, params *SearchParams) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get(ctx, "/api/v1/products/next?"+params.encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PreviousPage returns the result page before params.PageToken.
func (c *Client) PreviousPage(ctx context.Context, params *SearchParams) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get(ctx, "/api/v1/products/previous?"+params.encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func productQuery(domain string) string {
	if domain == "" {
		return ""
	}
	return "?domain=" + url.QueryEscape(domain)
}

// GetProduct returns a single catalog item by ASIN.
func (c *Client) GetProduct(ctx context.Context, asin, domain string) (*ProductResponse, error) {
	var resp ProductResponse
	path := "/api/v1/product/" + url.PathEscape(asin) + productQuery(domain)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetOffers returns the current offers for an item.
func (c *Client) GetOffers(ctx context.Context, asin, domain string) (*OffersResponse, error) {
	var resp OffersResponse
	path := "/api/v1/product/" + url.PathEscape(asin) + "/offers" + productQuery(domain)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetFees returns the estimated selling fees for an item at the given price.
func (c *Client) GetFees(
	ctx context.Context,
	asin, domain string,
	price float64,
) (*FeesResponse, error) {
	q := url.Values{}
	q.Set("price", strconv.FormatFloat(price, 'f', -1, 64))
	if domain != "" {
		q.Set("domain", domain)
	}

	var resp FeesResponse
	path := "/api/v1/product/" + url.PathEscape(asin) + "/fees?" + q.Encode()
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

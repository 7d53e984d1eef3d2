package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mfigueredo/amazon-sp-proxy/internal/amazon"
	"github.com/mfigueredo/amazon-sp-proxy/internal/credentials"
	"github.com/mfigueredo/amazon-sp-proxy/internal/identity"
)

// CatalogHandler proxies catalog search and item lookups.
type CatalogHandler struct {
	client amazon.CatalogClient
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(client amazon.CatalogClient) *CatalogHandler {
	return &CatalogHandler{client: client}
}

// --- Input/Output types ---

// SearchProductsInput is the input for a catalog keyword search.
type SearchProductsInput struct {
	Keywords string `query:"keywords" doc:"Search keywords" required:"true"`
	Domain   string `query:"domain"   doc:"Marketplace domain suffix (e.g. com, de, co.uk)" default:"com"`
}

// SearchPageInput is the input for fetching an adjacent result page.
type SearchPageInput struct {
	Keywords  string `query:"keywords"  doc:"Search keywords" required:"true"`
	Domain    string `query:"domain"    doc:"Marketplace domain suffix" default:"com"`
	PageToken string `query:"pageToken" doc:"Opaque page token from a previous response" required:"true"`
}

// SearchProductsOutput is the response for catalog searches.
type SearchProductsOutput struct {
	Body struct {
		Success bool                          `json:"success"`
		Data    *amazon.CatalogSearchResponse `json:"data"`
	}
}

// GetProductInput identifies a single catalog item.
type GetProductInput struct {
	ASIN   string `path:"asin"    doc:"Amazon Standard Identification Number"`
	Domain string `query:"domain" doc:"Marketplace domain suffix" default:"com"`
}

// GetProductOutput is the response for a single item lookup.
type GetProductOutput struct {
	Body struct {
		Success bool                `json:"success"`
		Data    *amazon.CatalogItem `json:"data"`
	}
}

// --- Shared helpers ---

// marketplaceParams resolves the authenticated user and marketplace domain
// to the regional endpoint and marketplace identifier.
func marketplaceParams(ctx context.Context, domain string) (userID, endpoint, marketplaceID string, err error) {
	userID, ok := identity.UserIDFromContext(ctx)
	if !ok {
		return "", "", "", huma.Error401Unauthorized("authentication required")
	}

	if domain == "" {
		domain = credentials.DefaultDomain
	}

	endpoint, err = amazon.EndpointForDomain(domain)
	if err != nil {
		return "", "", "", huma.Error400BadRequest("unknown marketplace domain: " + domain)
	}
	marketplaceID, err = amazon.MarketplaceIDForDomain(domain)
	if err != nil {
		return "", "", "", huma.Error400BadRequest("unknown marketplace domain: " + domain)
	}

	return userID, endpoint, marketplaceID, nil
}

// upstreamError maps credential and Amazon failures to HTTP errors.
func upstreamError(err error) error {
	switch {
	case errors.Is(err, credentials.ErrCreationFailed),
		errors.Is(err, credentials.ErrRefreshFailed):
		return huma.Error401Unauthorized("Amazon authorization failed: " + err.Error())
	case errors.Is(err, credentials.ErrUnavailable):
		return huma.Error503ServiceUnavailable("credentials unavailable: " + err.Error())
	default:
		return huma.Error502BadGateway("Amazon API request failed: " + err.Error())
	}
}

// --- Handlers ---

func (h *CatalogHandler) search(
	ctx context.Context,
	keywords, domain, pageToken string,
) (*SearchProductsOutput, error) {
	userID, endpoint, marketplaceID, err := marketplaceParams(ctx, domain)
	if err != nil {
		return nil, err
	}

	result, err := h.client.SearchCatalog(ctx, amazon.CatalogSearchRequest{
		UserID:        userID,
		Endpoint:      endpoint,
		MarketplaceID: marketplaceID,
		Keywords:      keywords,
		PageToken:     pageToken,
	})
	if err != nil {
		return nil, upstreamError(err)
	}

	resp := &SearchProductsOutput{}
	resp.Body.Success = true
	resp.Body.Data = result
	return resp, nil
}

// SearchProducts returns the first page of catalog search results.
func (h *CatalogHandler) SearchProducts(
	ctx context.Context,
	input *SearchProductsInput,
) (*SearchProductsOutput, error) {
	return h.search(ctx, input.Keywords, input.Domain, "")
}

// SearchProductsPage returns the result page behind an opaque page token.
// Next and previous share an implementation; the SP-API encodes direction
// in the token itself.
func (h *CatalogHandler) SearchProductsPage(
	ctx context.Context,
	input *SearchPageInput,
) (*SearchProductsOutput, error) {
	return h.search(ctx, input.Keywords, input.Domain, input.PageToken)
}

// GetProduct returns a single catalog item by ASIN.
func (h *CatalogHandler) GetProduct(
	ctx context.Context,
	input *GetProductInput,
) (*GetProductOutput, error) {
	userID, endpoint, marketplaceID, err := marketplaceParams(ctx, input.Domain)
	if err != nil {
		return nil, err
	}

	item, err := h.client.GetItem(ctx, amazon.ItemRequest{
		UserID:        userID,
		Endpoint:      endpoint,
		MarketplaceID: marketplaceID,
		ASIN:          input.ASIN,
	})
	if err != nil {
		return nil, upstreamError(err)
	}

	resp := &GetProductOutput{}
	resp.Body.Success = true
	resp.Body.Data = item
	return resp, nil
}

// RegisterCatalogRoutes registers catalog endpoints with the Huma API.
func RegisterCatalogRoutes(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/products",
		Summary:     "Search the catalog",
		Description: "Returns the first page of catalog items matching the keywords.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusUnauthorized, http.StatusBadGateway},
	}, h.SearchProducts)

	huma.Register(api, huma.Operation{
		OperationID: "search-products-next",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/next",
		Summary:     "Next result page",
		Description: "Returns the result page after the given page token.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusUnauthorized, http.StatusBadGateway},
	}, h.SearchProductsPage)

	huma.Register(api, huma.Operation{
		OperationID: "search-products-previous",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/previous",
		Summary:     "Previous result page",
		Description: "Returns the result page before the given page token.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusUnauthorized, http.StatusBadGateway},
	}, h.SearchProductsPage)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/product/{asin}",
		Summary:     "Get a catalog item",
		Description: "Returns a single catalog item by ASIN.",
		Tags:        []string{"catalog"},
		Errors:      []int{http.StatusUnauthorized, http.StatusBadGateway},
	}, h.GetProduct)
}

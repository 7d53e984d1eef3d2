package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mfigueredo/amazon-sp-proxy/internal/amazon"
)

// PricingHandler proxies offer listings and fee estimates.
type PricingHandler struct {
	client amazon.CatalogClient
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(client amazon.CatalogClient) *PricingHandler {
	return &PricingHandler{client: client}
}

// GetOffersInput identifies the item whose offers to fetch.
type GetOffersInput struct {
	ASIN   string `path:"asin"    doc:"Amazon Standard Identification Number"`
	Domain string `query:"domain" doc:"Marketplace domain suffix" default:"com"`
}

// GetOffersOutput is the response for an offer listing.
type GetOffersOutput struct {
	Body struct {
		Success bool                       `json:"success"`
		Data    *amazon.ItemOffersResponse `json:"data"`
	}
}

// GetFeesInput identifies the item and price to estimate fees for.
type GetFeesInput struct {
	ASIN   string  `path:"asin"    doc:"Amazon Standard Identification Number"`
	Domain string  `query:"domain" doc:"Marketplace domain suffix" default:"com"`
	Price  float64 `query:"price"  doc:"Listing price to estimate fees against" required:"true" minimum:"0"`
}

// GetFeesOutput is the response for a fees estimate.
type GetFeesOutput struct {
	Body struct {
		Success bool                         `json:"success"`
		Data    *amazon.FeesEstimateResponse `json:"data"`
	}
}

// GetOffers returns the current offers for an item, new condition only.
func (h *PricingHandler) GetOffers(
	ctx context.Context,
	input *GetOffersInput,
) (*GetOffersOutput, error) {
	userID, endpoint, marketplaceID, err := marketplaceParams(ctx, input.Domain)
	if err != nil {
		return nil, err
	}

	offers, err := h.client.GetItemOffers(ctx, amazon.ItemRequest{
		UserID:        userID,
		Endpoint:      endpoint,
		MarketplaceID: marketplaceID,
		ASIN:          input.ASIN,
	})
	if err != nil {
		return nil, upstreamError(err)
	}

	resp := &GetOffersOutput{}
	resp.Body.Success = true
	resp.Body.Data = offers
	return resp, nil
}

// GetFees returns the estimated selling fees for an item at a given price.
func (h *PricingHandler) GetFees(
	ctx context.Context,
	input *GetFeesInput,
) (*GetFeesOutput, error) {
	userID, endpoint, marketplaceID, err := marketplaceParams(ctx, input.Domain)
	if err != nil {
		return nil, err
	}

	fees, err := h.client.GetFeesEstimate(ctx, amazon.FeesEstimateRequest{
		UserID:        userID,
		Endpoint:      endpoint,
		MarketplaceID: marketplaceID,
		ASIN:          input.ASIN,
		Price:         input.Price,
	})
	if err != nil {
		return nil, upstreamError(err)
	}

	resp := &GetFeesOutput{}
	resp.Body.Success = true
	resp.Body.Data = fees
	return resp, nil
}

// RegisterPricingRoutes registers pricing endpoints with the Huma API.
func RegisterPricingRoutes(api huma.API, h *PricingHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-product-offers",
		Method:      http.MethodGet,
		Path:        "/api/v1/product/{asin}/offers",
		Summary:     "Get item offers",
		Description: "Returns the current new-condition offers for an item.",
		Tags:        []string{"pricing"},
		Errors:      []int{http.StatusUnauthorized, http.StatusBadGateway},
	}, h.GetOffers)

	huma.Register(api, huma.Operation{
		OperationID: "get-product-fees",
		Method:      http.MethodGet,
		Path:        "/api/v1/product/{asin}/fees",
		Summary:     "Estimate selling fees",
		Description: "Returns the estimated selling fees for an item at the given price.",
		Tags:        []string{"pricing"},
		Errors:      []int{http.StatusUnauthorized, http.StatusBadGateway},
	}, h.GetFees)
}

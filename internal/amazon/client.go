// Package amazon provides Selling Partner API clients abstracted behind
// interfaces for testability: an OAuth token exchange client and a
// catalog/pricing/fees client.
package amazon

import (
	"context"
)

// CatalogSearchRequest defines the parameters for a catalog keyword search.
// PageToken, when set, fetches the corresponding result page instead of the
// first one (the SP-API uses opaque forward/backward page tokens).
type CatalogSearchRequest struct {
	UserID        string
	Endpoint      string
	MarketplaceID string
	Keywords      string
	PageToken     string
}

// ItemRequest identifies a single catalog item.
type ItemRequest struct {
	UserID        string
	Endpoint      string
	MarketplaceID string
	ASIN          string
}

// FeesEstimateRequest defines the parameters for a fees estimate.
type FeesEstimateRequest struct {
	UserID        string
	Endpoint      string
	MarketplaceID string
	ASIN          string
	Price         float64
}

// CatalogClient defines the subset of the Selling Partner API this service
// proxies.
type CatalogClient interface {
	SearchCatalog(ctx context.Context, req CatalogSearchRequest) (*CatalogSearchResponse, error)
	GetItem(ctx context.Context, req ItemRequest) (*CatalogItem, error)
	GetItemOffers(ctx context.Context, req ItemRequest) (*ItemOffersResponse, error)
	GetFeesEstimate(ctx context.Context, req FeesEstimateRequest) (*FeesEstimateResponse, error)
}

// TokenExchanger defines the interface for exchanging a refresh token for a
// short-lived access token. An empty refreshToken selects the region default
// for the given marketplace domain.
type TokenExchanger interface {
	Exchange(ctx context.Context, domain, refreshToken string) (*Token, error)
}

// AccessTokenSource resolves a valid SP-API access token for a user. The
// credential lifecycle manager implements this; API clients depend only on
// this narrow view.
type AccessTokenSource interface {
	AccessToken(ctx context.Context, userID string) (string, error)
}

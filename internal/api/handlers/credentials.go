package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mfigueredo/amazon-sp-proxy/internal/credentials"
	"github.com/mfigueredo/amazon-sp-proxy/internal/identity"
)

// CredentialsHandler exposes credential lifecycle operations.
type CredentialsHandler struct {
	service credentials.Service
}

// NewCredentialsHandler creates a new CredentialsHandler.
func NewCredentialsHandler(svc credentials.Service) *CredentialsHandler {
	return &CredentialsHandler{service: svc}
}

// CredentialStatus is the caller-visible view of a credential record. Token
// material never leaves the service.
type CredentialStatus struct {
	UserID            string    `json:"userId"`
	MarketplaceDomain string    `json:"marketplaceDomain"`
	ExpiresAt         time.Time `json:"expiresAt"`
}

// ValidateCredentialsOutput is the response for a credential validation.
type ValidateCredentialsOutput struct {
	Body struct {
		Success bool              `json:"success"`
		Data    *CredentialStatus `json:"data"`
	}
}

// InvalidateCacheOutput is the response for a cache invalidation.
type InvalidateCacheOutput struct {
	Body struct {
		Success bool `json:"success"`
	}
}

// ValidateCredentials ensures the caller holds working Amazon credentials,
// creating or refreshing them as needed.
func (h *CredentialsHandler) ValidateCredentials(
	ctx context.Context,
	_ *struct{},
) (*ValidateCredentialsOutput, error) {
	userID, ok := identity.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	rec, err := h.service.EnsureValid(ctx, userID)
	switch {
	case errors.Is(err, credentials.ErrCreationFailed),
		errors.Is(err, credentials.ErrRefreshFailed):
		return nil, huma.Error401Unauthorized("Amazon authorization failed: " + err.Error())
	case err != nil:
		return nil, huma.Error503ServiceUnavailable("credential check failed: " + err.Error())
	}

	resp := &ValidateCredentialsOutput{}
	resp.Body.Success = true
	resp.Body.Data = &CredentialStatus{
		UserID:            rec.UserID,
		MarketplaceDomain: rec.MarketplaceDomain,
		ExpiresAt:         rec.ExpiresAt,
	}
	return resp, nil
}

// InvalidateCache drops the caller's cached credentials. The next request
// re-reads from the store.
func (h *CredentialsHandler) InvalidateCache(
	ctx context.Context,
	_ *struct{},
) (*InvalidateCacheOutput, error) {
	userID, ok := identity.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	h.service.Invalidate(userID)

	resp := &InvalidateCacheOutput{}
	resp.Body.Success = true
	return resp, nil
}

// RegisterCredentialRoutes registers credential endpoints with the Huma API.
func RegisterCredentialRoutes(api huma.API, h *CredentialsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "validate-credentials",
		Method:      http.MethodPost,
		Path:        "/api/v1/credentials/validate",
		Summary:     "Validate Amazon credentials",
		Description: "Ensures the caller holds working Amazon credentials, creating or refreshing them as needed.",
		Tags:        []string{"credentials"},
		Errors:      []int{http.StatusUnauthorized, http.StatusServiceUnavailable},
	}, h.ValidateCredentials)

	huma.Register(api, huma.Operation{
		OperationID: "invalidate-credential-cache",
		Method:      http.MethodDelete,
		Path:        "/api/v1/credentials/cache",
		Summary:     "Invalidate cached credentials",
		Description: "Drops the caller's cached credentials so the next request re-reads the store.",
		Tags:        []string{"credentials"},
		Errors:      []int{http.StatusUnauthorized},
	}, h.InvalidateCache)
}

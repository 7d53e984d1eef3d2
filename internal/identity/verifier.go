// Package identity resolves inbound bearer tokens to user identifiers via
// the auth service.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultVerifyTimeout = 10 * time.Second

// ErrUnauthorized means the auth service rejected the token.
var ErrUnauthorized = errors.New("token not recognized")

// Verifier resolves an end-user bearer token to a user identifier.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// HTTPVerifier verifies tokens against a GoTrue-compatible auth service.
type HTTPVerifier struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// VerifierOption configures the HTTPVerifier.
type VerifierOption func(*HTTPVerifier)

// WithVerifyHTTPClient sets a custom HTTP client (primarily for testing).
func WithVerifyHTTPClient(c *http.Client) VerifierOption {
	return func(v *HTTPVerifier) {
		v.client = c
	}
}

// NewHTTPVerifier creates a verifier against the auth service at baseURL.
// The apiKey authenticates this service to the auth service; the end-user
// token travels in the Authorization header.
func NewHTTPVerifier(baseURL, apiKey string, opts ...VerifierOption) *HTTPVerifier {
	v := &HTTPVerifier{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultVerifyTimeout},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type userResponse struct {
	ID string `json:"id"`
}

// Verify resolves token to a user identifier, or ErrUnauthorized when the
// auth service does not recognize it.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil,
	)
	if err != nil {
		return "", fmt.Errorf("creating verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling auth service: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("auth service error (status %d)", resp.StatusCode)
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decoding auth response: %w", err)
	}
	if user.ID == "" {
		return "", ErrUnauthorized
	}

	return user.ID, nil
}

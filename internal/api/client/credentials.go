package client

import (
	"context"
	"time"
)

// CredentialStatusResponse wraps a credential validation result.
type CredentialStatusResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		UserID            string    `json:"userId"`
		MarketplaceDomain string    `json:"marketplaceDomain"`
		ExpiresAt         time.Time `json:"expiresAt"`
	} `json:"data"`
}

// ValidateCredentials ensures the caller holds working Amazon credentials.
func (c *Client) ValidateCredentials(ctx context.Context) (*CredentialStatusResponse, error) {
	var resp CredentialStatusResponse
	if err := c.post(ctx, "/api/v1/credentials/validate", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InvalidateCredentialCache drops the caller's cached credentials.
func (c *Client) InvalidateCredentialCache(ctx context.Context) error {
	return c.del(ctx, "/api/v1/credentials/cache", nil)
}

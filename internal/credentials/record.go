// Package credentials implements the Amazon credential lifecycle: a
// time-bounded in-process cache, a store abstraction over the durable
// credential records, and a manager that guarantees callers a currently
// valid access token, creating or refreshing records as needed.
package credentials

import (
	"time"
)

// Timing defaults. The expiry buffer is the minimum remaining lifetime a
// token must have to be handed out; the refresh window is deliberately
// wider so one refresh amortizes across the requests that follow it.
const (
	DefaultCacheTTL      = 5 * time.Minute
	DefaultExpiryBuffer  = 2 * time.Minute
	DefaultRefreshWindow = 10 * time.Minute
)

// DefaultDomain is the marketplace domain first-time credentials are issued
// for. Creation always targets the default marketplace; per-marketplace
// credentials require a subsequent refresh against the stored domain.
const DefaultDomain = "com"

// Record is one user's Amazon OAuth grant state. The store enforces at most
// one record per user.
type Record struct {
	UserID            string    `json:"userId"`
	AccessToken       string    `json:"accessToken,omitempty"`
	RefreshToken      string    `json:"refreshToken,omitempty"`
	ExpiresAt         time.Time `json:"expiresAt"`
	MarketplaceDomain string    `json:"marketplaceDomain"`
}

// Valid reports whether the record can be handed to a caller: the access
// token is set and does not expire within the buffer.
func (r *Record) Valid(now time.Time, buffer time.Duration) bool {
	return r.AccessToken != "" && r.ExpiresAt.After(now.Add(buffer))
}

// NeedsRefresh reports whether the token expires within the refresh window
// (or has no recorded expiry at all).
func (r *Record) NeedsRefresh(now time.Time, window time.Duration) bool {
	if r.ExpiresAt.IsZero() {
		return true
	}
	return !r.ExpiresAt.After(now.Add(window))
}

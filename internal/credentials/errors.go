package credentials

import "errors"

// Lifecycle failure kinds. The manager wraps the underlying cause into one
// of these so callers can map failures to user-visible behavior without
// string matching.
var (
	// ErrCreationFailed means the initial token exchange for a new user
	// failed; nothing was persisted.
	ErrCreationFailed = errors.New("credential creation failed")

	// ErrRefreshFailed means the refresh exchange failed (for example a
	// revoked refresh token); the stale record remains in the store.
	ErrRefreshFailed = errors.New("credential refresh failed")

	// ErrUnavailable means an exchange apparently succeeded but the
	// resulting record still fails the validity post-condition (degenerate
	// token lifetime). An internal invariant violation.
	ErrUnavailable = errors.New("credentials unavailable")
)

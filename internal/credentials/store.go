package credentials

import (
	"context"
	"errors"
	"time"
)

// Store errors. Implementations map their backend's failure modes onto
// these sentinels; anything else propagates as-is.
var (
	// ErrNotFound is returned by Get and Update when no record exists for
	// the user.
	ErrNotFound = errors.New("credentials not found")

	// ErrDuplicate is returned by Insert when a record already exists for
	// the user. With multiple process instances racing on first use this is
	// an expected outcome, not a failure.
	ErrDuplicate = errors.New("credentials already exist")
)

// TokenUpdate is the partial record applied when a token is refreshed.
// AccessToken and ExpiresAt always change together.
type TokenUpdate struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Store is the durable credential record store, keyed by user identifier.
// Each operation is a single round trip; no transaction spans calls.
type Store interface {
	// Get returns the record for userID, or ErrNotFound.
	Get(ctx context.Context, userID string) (*Record, error)

	// Insert persists a new record. Returns ErrDuplicate if one already
	// exists for the user.
	Insert(ctx context.Context, rec *Record) error

	// Update applies a token update and returns the record as stored, so
	// callers can repopulate caches with store-confirmed values. Returns
	// ErrNotFound if no record exists.
	Update(ctx context.Context, userID string, upd TokenUpdate) (*Record, error)

	// Delete removes the record for userID. Deleting an absent record is
	// not an error.
	Delete(ctx context.Context, userID string) error
}

package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mfigueredo/amazon-sp-proxy/internal/amazon"
	"github.com/mfigueredo/amazon-sp-proxy/internal/metrics"
)

// Service is the credential lifecycle surface exposed to request handlers.
type Service interface {
	// EnsureValid returns a record whose access token is valid for at
	// least the expiry buffer, creating or refreshing as needed.
	EnsureValid(ctx context.Context, userID string) (*Record, error)

	// Invalidate drops any cached record for userID. The next lookup
	// repopulates from the store.
	Invalidate(userID string)
}

// Manager coordinates the cache, the store, and the token exchange client.
// It owns the decision of when to create or refresh; concurrent requests
// for the same user collapse onto a single in-flight exchange.
type Manager struct {
	store     Store
	exchanger amazon.TokenExchanger
	cache     *Cache
	group     singleflight.Group

	log           *slog.Logger
	nowFunc       func() time.Time
	expiryBuffer  time.Duration
	refreshWindow time.Duration
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithLogger sets the manager's logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = f
	}
}

// WithExpiryBuffer overrides the default validity buffer.
func WithExpiryBuffer(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.expiryBuffer = d
	}
}

// WithRefreshWindow overrides the default refresh window.
func WithRefreshWindow(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.refreshWindow = d
	}
}

// NewManager creates a credential lifecycle manager.
func NewManager(
	store Store,
	exchanger amazon.TokenExchanger,
	cache *Cache,
	opts ...ManagerOption,
) *Manager {
	m := &Manager{
		store:         store,
		exchanger:     exchanger,
		cache:         cache,
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		nowFunc:       time.Now,
		expiryBuffer:  DefaultExpiryBuffer,
		refreshWindow: DefaultRefreshWindow,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// EnsureValid returns a credential record with a usable access token for
// userID. Cache hits return without I/O; otherwise the record is loaded
// from the store and created or refreshed as its state requires. Concurrent
// calls for the same user share one resolution.
func (m *Manager) EnsureValid(ctx context.Context, userID string) (*Record, error) {
	if rec, ok := m.cache.Get(userID); ok {
		metrics.CredentialCacheHits.Inc()
		return rec, nil
	}
	metrics.CredentialCacheMisses.Inc()

	// The flight is shared with every collapsed caller, so it must not die
	// with whichever request happened to start it.
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := m.group.Do(userID, func() (any, error) {
		return m.resolve(flightCtx, userID)
	})
	if err != nil {
		return nil, err
	}

	rec, ok := v.(*Record)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected resolution result", ErrUnavailable)
	}
	return rec, nil
}

// AccessToken implements amazon.AccessTokenSource.
func (m *Manager) AccessToken(ctx context.Context, userID string) (string, error) {
	rec, err := m.EnsureValid(ctx, userID)
	if err != nil {
		return "", err
	}
	return rec.AccessToken, nil
}

// Invalidate implements Service.
func (m *Manager) Invalidate(userID string) {
	m.cache.Invalidate(userID)
}

// resolve loads the user's record from the store and brings it to a valid
// state. Runs inside the per-user singleflight.
func (m *Manager) resolve(ctx context.Context, userID string) (*Record, error) {
	rec, err := m.store.Get(ctx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		return m.create(ctx, userID)
	case err != nil:
		return nil, fmt.Errorf("reading credentials for %s: %w", userID, err)
	}

	if rec.NeedsRefresh(m.nowFunc(), m.refreshWindow) {
		return m.refresh(ctx, rec)
	}

	return m.finish(rec)
}

// create performs the first-time token exchange for a user and persists the
// resulting record. Creation always targets the default marketplace domain.
func (m *Manager) create(ctx context.Context, userID string) (*Record, error) {
	token, err := m.exchanger.Exchange(ctx, DefaultDomain, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreationFailed, err)
	}

	rec := &Record{
		UserID:            userID,
		AccessToken:       token.AccessToken,
		RefreshToken:      token.RefreshToken,
		ExpiresAt:         m.nowFunc().Add(time.Duration(token.ExpiresIn) * time.Second),
		MarketplaceDomain: DefaultDomain,
	}

	err = m.store.Insert(ctx, rec)
	switch {
	case errors.Is(err, ErrDuplicate):
		// Another instance created the record between our read and insert.
		// Its write is authoritative; re-read instead of failing.
		m.log.Debug("concurrent credential creation detected", "user_id", userID)
		rec, err = m.store.Get(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("re-reading credentials for %s: %w", userID, err)
		}
	case err != nil:
		return nil, fmt.Errorf("inserting credentials for %s: %w", userID, err)
	default:
		metrics.CredentialCreatesTotal.Inc()
		m.log.Info("created credentials", "user_id", userID, "domain", rec.MarketplaceDomain)
	}

	return m.finish(rec)
}

// refresh exchanges the record's refresh token (or the region default when
// the record carries none) and writes the new token through the store.
func (m *Manager) refresh(ctx context.Context, rec *Record) (*Record, error) {
	token, err := m.exchanger.Exchange(ctx, rec.MarketplaceDomain, rec.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	upd := TokenUpdate{
		AccessToken:  token.AccessToken,
		RefreshToken: rec.RefreshToken,
		ExpiresAt:    m.nowFunc().Add(time.Duration(token.ExpiresIn) * time.Second),
	}
	if token.RefreshToken != "" {
		upd.RefreshToken = token.RefreshToken
	}

	updated, err := m.store.Update(ctx, rec.UserID, upd)
	if err != nil {
		return nil, fmt.Errorf("updating credentials for %s: %w", rec.UserID, err)
	}

	metrics.CredentialRefreshesTotal.Inc()
	m.log.Info("refreshed credentials",
		"user_id", rec.UserID,
		"domain", rec.MarketplaceDomain,
		"expires_at", updated.ExpiresAt,
	)

	return m.finish(updated)
}

// finish enforces the validity post-condition and updates the cache. A
// record that still fails the check here (for example an exchange returning
// a near-zero lifetime) is never returned or cached.
func (m *Manager) finish(rec *Record) (*Record, error) {
	if !rec.Valid(m.nowFunc(), m.expiryBuffer) {
		return nil, fmt.Errorf(
			"%w: token for %s expires at %s",
			ErrUnavailable, rec.UserID, rec.ExpiresAt.UTC().Format(time.RFC3339),
		)
	}

	m.cache.Set(rec.UserID, rec)
	return rec, nil
}

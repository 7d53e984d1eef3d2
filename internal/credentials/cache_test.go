package credentials

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(userID string, expiresAt time.Time) *Record {
	return &Record{
		UserID:            userID,
		AccessToken:       "tok-" + userID,
		RefreshToken:      "rt-" + userID,
		ExpiresAt:         expiresAt,
		MarketplaceDomain: "com",
	}
}

func TestCacheSetGet(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(WithCacheNowFunc(func() time.Time { return now }))

	rec := testRecord("u1", now.Add(time.Hour))
	c.Set("u1", rec)

	got, ok := c.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "tok-u1", got.AccessToken)
	assert.Equal(t, "com", got.MarketplaceDomain)

	_, ok = c.Get("u2")
	assert.False(t, ok)
}

func TestCacheReturnsCopy(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(WithCacheNowFunc(func() time.Time { return now }))

	c.Set("u1", testRecord("u1", now.Add(time.Hour)))

	first, ok := c.Get("u1")
	require.True(t, ok)
	first.AccessToken = "mutated"

	second, ok := c.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "tok-u1", second.AccessToken)
}

func TestCacheEntryExpiresAfterTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(WithCacheNowFunc(func() time.Time { return now }))

	c.Set("u1", testRecord("u1", now.Add(time.Hour)))

	now = now.Add(DefaultCacheTTL - time.Second)
	_, ok := c.Get("u1")
	assert.True(t, ok, "entry younger than TTL should be served")

	now = now.Add(2 * time.Second)
	_, ok = c.Get("u1")
	assert.False(t, ok, "entry older than TTL should be evicted")
	assert.Equal(t, 0, c.Len())
}

func TestCacheRejectsNearExpiryToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(WithCacheNowFunc(func() time.Time { return now }))

	// Fresh cache entry, but the token itself expires inside the buffer.
	c.Set("u1", testRecord("u1", now.Add(DefaultExpiryBuffer-time.Second)))

	_, ok := c.Get("u1")
	assert.False(t, ok, "token expiring within the buffer must not be served")
	assert.Equal(t, 0, c.Len())
}

func TestCacheInvalidate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(WithCacheNowFunc(func() time.Time { return now }))

	c.Set("u1", testRecord("u1", now.Add(time.Hour)))
	c.Invalidate("u1")

	_, ok := c.Get("u1")
	assert.False(t, ok)

	// Invalidating an absent entry is a no-op.
	c.Invalidate("u1")
}

func TestCacheSweep(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c := NewCache(WithCacheNowFunc(func() time.Time { return now }))

	c.Set("old1", testRecord("old1", base.Add(time.Hour)))
	c.Set("old2", testRecord("old2", base.Add(time.Hour)))

	now = base.Add(DefaultCacheTTL - time.Minute)
	c.Set("fresh", testRecord("fresh", base.Add(time.Hour)))

	now = base.Add(DefaultCacheTTL)
	evicted := c.Sweep()
	assert.Equal(t, 2, evicted)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("fresh")
	assert.True(t, ok)
}

func TestCacheCustomTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCache(
		WithCacheTTL(time.Minute),
		WithCacheNowFunc(func() time.Time { return now }),
	)

	c.Set("u1", testRecord("u1", now.Add(time.Hour)))

	now = now.Add(time.Minute)
	_, ok := c.Get("u1")
	assert.False(t, ok)
}

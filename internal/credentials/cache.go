package credentials

import (
	"sync"
	"time"
)

type cacheEntry struct {
	record   Record
	cachedAt time.Time
}

// Cache is a time-bounded memoization of credential records keyed by user
// identifier. It is not a source of truth: entries may be evicted at any
// time and the next read repopulates from the store. Safe for concurrent
// use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry

	ttl     time.Duration
	buffer  time.Duration
	nowFunc func() time.Time
}

// CacheOption configures the Cache.
type CacheOption func(*Cache)

// WithCacheTTL overrides the default entry TTL.
func WithCacheTTL(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = d
	}
}

// WithCacheBuffer overrides the default token expiry buffer.
func WithCacheBuffer(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.buffer = d
	}
}

// WithCacheNowFunc overrides the time function for testing.
func WithCacheNowFunc(f func() time.Time) CacheOption {
	return func(c *Cache) {
		c.nowFunc = f
	}
}

// NewCache creates an empty credential cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     DefaultCacheTTL,
		buffer:  DefaultExpiryBuffer,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached record for userID if the entry is younger than the
// TTL and its token stays valid past the expiry buffer. Entries failing
// either check are evicted on the spot.
func (c *Cache) Get(userID string) (*Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[userID]
	if !ok {
		return nil, false
	}

	now := c.nowFunc()
	if now.Sub(e.cachedAt) >= c.ttl || !e.record.Valid(now, c.buffer) {
		delete(c.entries, userID)
		return nil, false
	}

	rec := e.record
	return &rec, true
}

// Set unconditionally (re)stores the record, stamping it with the current
// time.
func (c *Cache) Set(userID string, rec *Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[userID] = cacheEntry{
		record:   *rec,
		cachedAt: c.nowFunc(),
	}
}

// Invalidate removes any entry for userID.
func (c *Cache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, userID)
}

// Sweep removes all entries older than the TTL and returns the number
// evicted. Lazy eviction in Get is correct on its own; sweeping only bounds
// memory between reads.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFunc()
	evicted := 0
	for userID, e := range c.entries {
		if now.Sub(e.cachedAt) >= c.ttl {
			delete(c.entries, userID)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

package credentials

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper evicts stale cache entries on a fixed interval.
type Sweeper struct {
	cron  *cron.Cron
	cache *Cache
	log   *slog.Logger
}

// NewSweeper creates a Sweeper that sweeps the cache every interval.
func NewSweeper(cache *Cache, interval time.Duration, log *slog.Logger) (*Sweeper, error) {
	c := cron.New()

	s := &Sweeper{
		cron:  c,
		cache: cache,
		log:   log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runSweep); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins the sweep schedule.
func (s *Sweeper) Start() {
	s.log.Info("cache sweeper started")
	s.cron.Start()
}

// Stop gracefully stops the sweeper, waiting for a running sweep to finish.
func (s *Sweeper) Stop() context.Context {
	s.log.Info("cache sweeper stopping")
	return s.cron.Stop()
}

func (s *Sweeper) runSweep() {
	if evicted := s.cache.Sweep(); evicted > 0 {
		s.log.Info("swept credential cache", "evicted", evicted)
	}
}

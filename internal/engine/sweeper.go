package engine

import (
	"context"
	"log/slog"
	"time"
)

// CacheSweeper periodically evicts expired entries from a ResultCache so
// abandoned sessions don't pin memory.
type CacheSweeper struct {
	interval time.Duration
	cache    *ResultCache
	logger   *slog.Logger
}

// NewCacheSweeper creates a sweeper ticking at the given interval.
func NewCacheSweeper(interval time.Duration, cache *ResultCache, logger *slog.Logger) *CacheSweeper {
	return &CacheSweeper{
		interval: interval,
		cache:    cache,
		logger:   logger,
	}
}

// Start launches a background goroutine that sweeps at the configured
// interval. It stops when ctx is cancelled.
func (s *CacheSweeper) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				if removed := s.cache.Sweep(t); removed > 0 && s.logger != nil {
					s.logger.Debug("cache sweep", slog.Int("evicted", removed))
				}
			}
		}
	}()
}

package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/potledger/potledger/internal/domain"
)

// ResultCache is a thread-safe TTL cache for computed settlements, keyed by
// a deterministic hash of the inputs. It is purely a performance shortcut
// for repeated identical requests — never a source of truth. A miss simply
// recomputes.
type ResultCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	settlement *domain.OptimizedSettlement
	expiresAt  time.Time
}

// NewResultCache creates an empty cache whose entries live for ttl.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// CacheKey derives the deterministic cache key for a settlement request:
// a SHA-256 hash over the session id and the canonicalized positions. The
// aggregator already orders positions by player id, so identical snapshots
// always hash identically.
func CacheKey(sessionID string, positions []domain.PlayerPosition) string {
	var b strings.Builder
	b.WriteString(sessionID)
	for _, pos := range positions {
		fmt.Fprintf(&b, "|%s:%d:%d:%d", pos.PlayerID, pos.TotalBuyInsCents, pos.TotalCashOutsCents, pos.CurrentChipsCents)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached settlement for key, if present and not expired.
func (c *ResultCache) Get(key string) (*domain.OptimizedSettlement, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.settlement, true
}

// Put stores a settlement under key with the configured TTL.
func (c *ResultCache) Put(key string, s *domain.OptimizedSettlement) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		settlement: s,
		expiresAt:  time.Now().Add(c.ttl),
	}
}

// Sweep evicts all entries expired as of now and returns how many were
// removed.
func (c *ResultCache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries currently held, expired or not.
// Useful for testing.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Package idcache provides a TTL cache for asset id to metadata
// resolution. The cache is an explicit injected object owned by its
// caller; there is no process-wide state.
package idcache

import (
	"sync"
	"time"

	"finance-tracker/internal/sources"
)

// DefaultTTL is used when a cache is created with a non-positive TTL.
const DefaultTTL = 6 * time.Hour

type entry struct {
	info      sources.AssetInfo
	expiresAt time.Time
}

// Cache maps asset ids to metadata with per-entry expiry. Safe for
// concurrent use.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[int64]entry
}

// New creates a cache with the given TTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[int64]entry),
	}
}

// Get returns the cached metadata for id if present and unexpired.
func (c *Cache) Get(id int64) (sources.AssetInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok || c.now().After(e.expiresAt) {
		return sources.AssetInfo{}, false
	}
	return e.info, true
}

// Put stores metadata for id, resetting its expiry.
func (c *Cache) Put(id int64, info sources.AssetInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = entry{info: info, expiresAt: c.now().Add(c.ttl)}
}

// PruneExpired removes expired entries and returns how many were
// dropped.
func (c *Cache) PruneExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	dropped := 0
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, id)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of entries, including any not yet pruned.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

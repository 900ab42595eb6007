package names

import (
	"context"
	"sync"
	"time"
)

// Cache is the get/put contract for resolved names.
type Cache interface {
	Get(ctx context.Context, code string) (string, bool, error)
	Set(ctx context.Context, code, name string, ttl time.Duration) error
}

type entry struct {
	name      string
	expiry    time.Time
	insertIdx int64
}

// MemoryCache is an in-process TTL cache. Expired entries are removed
// lazily; the oldest entry is evicted once maxEntries is reached.
type MemoryCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	maxEntries int
	nextIdx    int64
	now        func() time.Time
}

// NewMemoryCache creates a MemoryCache holding at most maxEntries names.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	return &MemoryCache{
		items:      make(map[string]entry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, code string) (string, bool, error) {
	c.mu.RLock()
	e, ok := c.items[code]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}

	if c.now().After(e.expiry) {
		c.mu.Lock()
		if e2, ok2 := c.items[code]; ok2 && c.now().After(e2.expiry) {
			delete(c.items, code)
		}
		c.mu.Unlock()
		return "", false, nil
	}
	return e.name, true, nil
}

func (c *MemoryCache) Set(_ context.Context, code, name string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{name: name, expiry: c.now().Add(ttl), insertIdx: c.nextIdx}
	c.nextIdx++

	if _, exists := c.items[code]; !exists && len(c.items) >= c.maxEntries {
		c.evictOldest()
	}
	c.items[code] = e
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictOldest must be called with mu held.
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1
	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}
	if oldestIdx >= 0 {
		delete(c.items, oldestKey)
	}
}

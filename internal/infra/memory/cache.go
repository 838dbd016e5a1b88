package memory

import (
	"context"
	"sync"
	"time"
)

// Cache is a TTL map cache used when Redis is not configured. The clock is
// injectable so tests can advance time deterministically.
type Cache struct {
	clock func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewCache() *Cache {
	return NewCacheWithClock(time.Now)
}

func NewCacheWithClock(clock func() time.Time) *Cache {
	return &Cache{clock: clock, entries: make(map[string]cacheEntry)}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || !entry.expiresAt.After(c.clock()) {
		return nil, false, nil
	}
	cp := make([]byte, len(entry.value))
	copy(cp, entry.value)
	return cp, true, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	cp := make([]byte, len(value))
	copy(cp, value)
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: cp, expiresAt: c.clock().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

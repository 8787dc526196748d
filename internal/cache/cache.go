// Package cache is a small in-memory TTL cache for API responses. Entries
// carry their own expiry so different endpoints can cache on different
// horizons. Reads and writes are last-write-wins under a single lock.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL applies when Set is called with a non-positive TTL.
const DefaultTTL = 5 * time.Minute

type item struct {
	value     any
	expiresAt time.Time
}

// Cache is a concurrency-safe key/value store with per-entry expiry.
type Cache struct {
	mu    sync.RWMutex
	items map[string]item
	now   func() time.Time
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		items: make(map[string]item),
		now:   time.Now,
	}
}

// Set stores a value under key for the given TTL.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{value: value, expiresAt: c.now().Add(ttl)}
}

// Get returns the value under key, or false if absent or expired. Expired
// entries are removed on read.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if c.now().After(it.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another writer may have refreshed it.
		if cur, ok := c.items[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return it.value, true
}

// CleanExpired removes expired entries and returns how many were dropped.
func (c *Cache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	now := c.now()
	for key, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item)
}

// Size returns the number of entries, expired ones included.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

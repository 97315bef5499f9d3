// Package memory implements an in-process backend.Buffered, suitable for
// tests and single-process deployments that don't need persistence.
package memory

import (
	"context"
	"sync"

	"github.com/always-cache/cachekit/backend"
)

// Cache is a mutex-guarded map-backed implementation of backend.Buffered.
// It is safe for concurrent use; the zero value is not usable, use New.
type Cache struct {
	mu sync.RWMutex
	db map[string]backend.CacheEntry
}

// New returns an empty in-memory cache.
func New() *Cache {
	return &Cache{db: make(map[string]backend.CacheEntry)}
}

func (c *Cache) Get(_ context.Context, key string) (backend.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.db[key]
	if !ok {
		return backend.CacheEntry{}, backend.ErrNotFound
	}
	return entry, nil
}

func (c *Cache) Put(_ context.Context, key string, entry backend.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.db[key] = entry
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.db, key)
	return nil
}

// Keys calls cb for every key currently stored, e.g. for prefix-based
// purging (cmd/cachekitproxy's purge route).
func (c *Cache) Keys(cb func(string)) {
	c.mu.RLock()
	keys := make([]string, 0, len(c.db))
	for key := range c.db {
		keys = append(keys, key)
	}
	c.mu.RUnlock()
	for _, key := range keys {
		cb(key)
	}
}

// Len reports the number of entries currently stored.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.db)
}

// Package cache provides a process-wide TTL-keyed memoization cache.
// Entries are immutable once stored; the only invalidation is TTL expiry.
// Concurrent identical lookups may redundantly recompute — callers get
// "eventually cached", not "at most once".
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a concurrency-safe in-memory TTL cache.
type Cache[V any] struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry[V]
}

// New creates a Cache whose entries expire ttl after insertion.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl: ttl,
		m:   make(map[string]entry[V]),
	}
}

// Get returns the cached value for key, or false if absent or expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.m[key]
	if !ok || time.Since(e.insertedAt) > c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, resetting its TTL window.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry[V]{value: value, insertedAt: time.Now()}
}

// Purge drops all expired entries and reports how many were removed.
func (c *Cache[V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var removed int
	for k, e := range c.m {
		if time.Since(e.insertedAt) > c.ttl {
			delete(c.m, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

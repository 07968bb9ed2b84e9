// Package cache holds the process-wide results of successful remote calls.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a keyed store whose entries are reclaimed when it reaches its
// capacity, or when they reach their time-to-live. It is safe for concurrent
// use.
type Cache[V any] struct {
	entries *expirable.LRU[string, V]
}

// New returns a cache that holds at most size entries, each for at most ttl.
// A ttl of zero disables expiry.
func New[V any](size int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

// Get returns the entry stored under k.
func (c *Cache[V]) Get(k string) (V, bool) {
	return c.entries.Get(k)
}

// Put stores v under k, replacing any existing entry.
func (c *Cache[V]) Put(k string, v V) {
	c.entries.Add(k, v)
}

// Evict removes the entry stored under k, if any.
func (c *Cache[V]) Evict(k string) {
	c.entries.Remove(k)
}

// Len returns the number of entries in the cache.
func (c *Cache[V]) Len() int {
	return c.entries.Len()
}

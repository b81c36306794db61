package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// TTLCache is a bounded read-through cache: least-recently-used entries are
// evicted once the size cap is reached, and entries older than the freshness
// window are treated as absent (the stale value is overwritten by the next
// Put). Safe for concurrent use.
type TTLCache[K comparable, V any] struct {
	lru *expirable.LRU[K, entry[V]]
	ttl time.Duration
	now func() time.Time
}

func New[K comparable, V any](size int, ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		lru: expirable.NewLRU[K, entry[V]](size, nil, ttl),
		ttl: ttl,
		now: time.Now,
	}
}

// Get returns the cached value for key if it is younger than the freshness
// window.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	e, ok := c.lru.Get(key)
	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores value under key, resetting its freshness window.
func (c *TTLCache[K, V]) Put(key K, value V) {
	c.lru.Add(key, entry[V]{value: value, fetchedAt: c.now()})
}

// Delete removes key from the cache.
func (c *TTLCache[K, V]) Delete(key K) {
	c.lru.Remove(key)
}

func (c *TTLCache[K, V]) Len() int {
	return c.lru.Len()
}

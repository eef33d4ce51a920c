// Package collections holds the small generic containers shared by the manifest
// and CLI code.
package collections

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// LruCache is a fixed-size least-recently-used cache that counts its hits and
// misses. It is safe for concurrent use.
type LruCache[K comparable, V any] struct {
	entries *lru.Cache[K, V]

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewLruCache[K comparable, V any](maxSize int) (*LruCache[K, V], error) {
	entries, err := lru.New[K, V](maxSize)
	if err != nil {
		return nil, errors.Wrapf(err, "NewLruCache: Problem creating cache of size %d", maxSize)
	}
	return &LruCache[K, V]{entries: entries}, nil
}

func (cache *LruCache[K, V]) Put(key K, value V) {
	cache.entries.Add(key, value)
}

// Get returns the cached value and marks it most recently used.
func (cache *LruCache[K, V]) Get(key K) (V, bool) {
	value, exists := cache.entries.Get(key)
	if exists {
		cache.hits.Add(1)
	} else {
		cache.misses.Add(1)
	}
	return value, exists
}

// GetOrCompute returns the cached value for key, or calls computeFn and caches
// its result. Errors are returned as-is and nothing is cached for them.
// Concurrent misses on the same key may each call computeFn.
func (cache *LruCache[K, V]) GetOrCompute(key K, computeFn func() (V, error)) (V, error) {
	if value, exists := cache.Get(key); exists {
		return value, nil
	}
	value, err := computeFn()
	if err != nil {
		var zero V
		return zero, err
	}
	cache.Put(key, value)
	return value, nil
}

// Exists reports whether key is cached without touching its recency or the stats.
func (cache *LruCache[K, V]) Exists(key K) bool {
	return cache.entries.Contains(key)
}

func (cache *LruCache[K, V]) Delete(key K) {
	cache.entries.Remove(key)
}

func (cache *LruCache[K, V]) Purge() {
	cache.entries.Purge()
}

func (cache *LruCache[K, V]) Len() int {
	return cache.entries.Len()
}

// Keys lists the cached keys from oldest to newest.
func (cache *LruCache[K, V]) Keys() []K {
	return cache.entries.Keys()
}

// Stats returns the hit and miss counts of Get and GetOrCompute so far.
func (cache *LruCache[K, V]) Stats() (hits uint64, misses uint64) {
	return cache.hits.Load(), cache.misses.Load()
}

// Package cache holds search results served by the HTTP server until the
// catalog changes or the entry expires.
package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dreamdwell/dreamdwell/pkg/filter"
)

// Results caches one V per search criteria.
type Results[V any] struct {
	store  *gocache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats is a snapshot of cache usage.
type Stats struct {
	Items  int    `json:"items"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// New creates a cache whose entries live for ttl. Expired entries are swept
// every 2*ttl.
func New[V any](ttl time.Duration) *Results[V] {
	return &Results[V]{store: gocache.New(ttl, 2*ttl)}
}

// Key is the cache key for c. Criteria that differ only in parameter order
// share a key.
func Key(c filter.Criteria) string {
	return "search:" + c.Values().Encode()
}

// Get returns the cached result for c.
func (r *Results[V]) Get(c filter.Criteria) (V, bool) {
	if v, ok := r.store.Get(Key(c)); ok {
		r.hits.Add(1)
		return v.(V), true
	}
	r.misses.Add(1)
	var zero V
	return zero, false
}

// Put stores v as the result for c.
func (r *Results[V]) Put(c filter.Criteria, v V) {
	r.store.SetDefault(Key(c), v)
}

// Invalidate drops every entry. Hit and miss counters are kept.
func (r *Results[V]) Invalidate() {
	r.store.Flush()
}

func (r *Results[V]) Stats() Stats {
	return Stats{
		Items:  r.store.ItemCount(),
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
	}
}

// Package dedupe tracks which profile snapshots were already submitted.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"
)

// DefaultMaxSize is the number of keys kept when no size is configured.
const DefaultMaxSize = 50000

// Deduper records seen submission keys to ensure at-most-once processing.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets key so a rejected submission can be retried.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// inMemoryDeduper keeps keys in an LRU. Bounded mode evicts the least
// recently seen key; a non-positive size never evicts.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    *lru.Cache
	maxSize int
	size    atomic.Int64
	evicted atomic.Int64
}

// NewInMemoryDeduper creates a deduper configured by opts.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}

	limit := d.maxSize
	if limit < 0 {
		limit = 0
	}
	d.seen = lru.New(limit)
	d.seen.OnEvicted = func(lru.Key, interface{}) {
		d.size.Add(-1)
		d.evicted.Add(1)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	// Get also refreshes recency so hot keys survive eviction.
	if _, ok := d.seen.Get(key); ok {
		return true
	}
	d.size.Add(1)
	d.seen.Add(key, struct{}{})
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen.Get(key); !ok {
		return
	}
	// Remove fires OnEvicted; undo its eviction count.
	d.seen.Remove(key)
	d.evicted.Add(-1)
}

// Size returns the current number of keys.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// Evicted returns how many keys a deduper dropped to stay within its bound.
// It returns 0 for implementations that do not track evictions.
func Evicted(d Deduper) int64 {
	if m, ok := d.(*inMemoryDeduper); ok {
		return m.evicted.Load()
	}
	return 0
}

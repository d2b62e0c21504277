package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// DefaultShardCount is the number of shards of a Sharded cache.
// Must be a power of 2 for fast modulo via bitwise AND.
const DefaultShardCount = 16

const shardMask = DefaultShardCount - 1

// Hasher computes the hash used to pick a key's shard.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of s.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Sharded is a thread-safe LRU cache split into DefaultShardCount shards,
// each with its own lock and limit. Use it where many goroutines hit the
// cache at once; Cache is simpler otherwise.
type Sharded[K comparable, V any] struct {
	shards [DefaultShardCount]shard[K, V]
	hasher Hasher[K]
	limit  int // per shard, 0 = unlimited

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*cacheEntry[V, K]
	order   lruList[K]
}

// NewSharded creates a sharded cache holding at most limit entries per
// shard. A limit of 0 means unlimited.
func NewSharded[K comparable, V any](limit int, hasher Hasher[K]) *Sharded[K, V] {
	c := &Sharded[K, V]{hasher: hasher, limit: limit}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]*cacheEntry[V, K])
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Get retrieves a value and marks it most recently used in its shard.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	s.order.MoveToFront(entry.node)
	return entry.value, true
}

// GetOrCreate returns the cached value for key, or calls create and caches
// its result. create runs under the shard lock; keep it short. Errors from
// create are returned and nothing is cached.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[key]; ok {
		c.hits.Add(1)
		s.order.MoveToFront(entry.node)
		return entry.value, nil
	}
	c.misses.Add(1)

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	s.entries[key] = &cacheEntry[V, K]{value: value, node: s.order.PushFront(key)}
	for c.limit > 0 && len(s.entries) > c.limit {
		oldest, ok := s.order.RemoveOldest()
		if !ok {
			break
		}
		delete(s.entries, oldest)
		c.evictions.Add(1)
	}
	return value, nil
}

// Clear removes all entries. Statistics are kept.
func (c *Sharded[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		clear(s.entries)
		s.order.Clear()
		s.mu.Unlock()
	}
}

// Len returns the total number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Stats returns cache statistics. Capacity is the total over all shards.
func (c *Sharded[K, V]) Stats() Stats {
	st := Stats{
		Len:       c.Len(),
		Capacity:  c.limit * DefaultShardCount,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
	if total := st.Hits + st.Misses; total > 0 {
		st.HitRate = float64(st.Hits) / float64(total)
	}
	return st
}

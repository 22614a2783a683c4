// Package cache provides a bounded, TTL-keyed result cache with LRU
// eviction for match computations. The cache is an optimization, never a
// source of truth: on any doubt the caller recomputes.
package cache

import (
	"sync"
	"time"

	"github.com/jonathan/skillmatch/internal/types"
)

// DefaultTTL is the freshness window applied when Put is called with a
// non-positive ttl.
const DefaultTTL = 15 * time.Minute

// DefaultMaxSize bounds the cache when no capacity is configured.
const DefaultMaxSize = 1000

// entry is one cached batch result with its freshness metadata. Lifecycle
// is owned entirely by the Cache; entries are never handed out.
type entry struct {
	key          Key
	value        []types.MatchResult
	expiresAt    time.Time
	lastAccessed time.Time
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
	Size      int
}

// Cache is a mutex-guarded LRU+TTL cache of ranked match results keyed by
// fingerprint. Every operation is a single short critical section; nothing
// blocking (in particular no provider call) runs under the lock.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry // fingerprint -> entry
	maxSize int
	now     func() time.Time

	hits      int
	misses    int
	evictions int
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxSize sets the capacity bound.
func WithMaxSize(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithClock injects a time source, used by tests to simulate TTL expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		maxSize: DefaultMaxSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached results for a key if present and fresh. An
// expired entry is treated as a miss and lazily evicted. A hit refreshes
// the entry's last-access time.
func (c *Cache) Get(key Key) ([]types.MatchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fp := key.Fingerprint()
	e, ok := c.entries[fp]
	if !ok {
		c.misses++
		return nil, false
	}

	now := c.now()
	if !now.Before(e.expiresAt) {
		delete(c.entries, fp)
		c.misses++
		return nil, false
	}

	e.lastAccessed = now
	c.hits++
	return e.value, true
}

// Put inserts or overwrites the results for a key. At capacity, the entry
// with the oldest last-access time is evicted first.
func (c *Cache) Put(key Key, value []types.MatchResult, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fp := key.Fingerprint()
	now := c.now()

	if _, exists := c.entries[fp]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[fp] = &entry{
		key:          key,
		value:        value,
		expiresAt:    now.Add(ttl),
		lastAccessed: now,
	}
}

// Invalidate removes every entry whose key matches the predicate and
// returns the number removed.
func (c *Cache) Invalidate(predicate func(Key) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for fp, e := range c.entries {
		if predicate(e.key) {
			delete(c.entries, fp)
			removed++
		}
	}
	return removed
}

// Purge removes all entries.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Len returns the current number of entries, including any not yet lazily
// expired.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the hit/miss/eviction counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.entries),
	}
}

// evictOldest removes the entry with the oldest last-access time. Caller
// holds the lock.
func (c *Cache) evictOldest() {
	var oldestFP string
	var oldest time.Time
	first := true

	for fp, e := range c.entries {
		if first || e.lastAccessed.Before(oldest) {
			oldestFP = fp
			oldest = e.lastAccessed
			first = false
		}
	}

	if oldestFP != "" {
		delete(c.entries, oldestFP)
		c.evictions++
	}
}

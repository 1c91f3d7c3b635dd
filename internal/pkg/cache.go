package pkg

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Cache is a small key -> (value, expiry) store for read-heavy list
// endpoints. Mutating operations call Invalidate, so the TTL only acts as a
// backstop for writers that bypass the service layer (manual SQL, another
// process). The clock is injected so expiry is testable without sleeping.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   clockwork.Clock
	entries map[string]*cacheEntry
}

// cacheEntry serializes fills per key. gen counts invalidations; a fill
// started before an invalidation stores a fillGen behind gen, so its value is
// never served.
type cacheEntry struct {
	fillMu   sync.Mutex
	gen      atomic.Uint64
	value    any
	filled   bool
	fillGen  uint64
	expireAt time.Time
}

// NewCache creates a Cache with the given TTL. A nil clock defaults to the
// real clock.
func NewCache(ttl time.Duration, clock clockwork.Clock) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]*cacheEntry),
	}
}

// GetOrPopulate returns the cached value for key, calling populate to fill it
// on a miss or after expiry. populate errors are returned without caching, so
// a transient failure does not poison the entry.
//
// populate runs under a per-key lock: concurrent readers of the same key wait
// for one fill instead of stampeding the datastore, while readers of other
// keys and invalidations proceed unblocked.
func (c *Cache) GetOrPopulate(key string, populate func() (any, error)) (any, error) {
	e := c.entry(key)
	e.fillMu.Lock()
	defer e.fillMu.Unlock()

	now := c.clock.Now()
	if e.filled && e.fillGen == e.gen.Load() && now.Before(e.expireAt) {
		return e.value, nil
	}

	gen := e.gen.Load()
	value, err := populate()
	if err != nil {
		return nil, err
	}

	e.value = value
	e.filled = true
	e.fillGen = gen
	e.expireAt = c.clock.Now().Add(c.ttl)
	return value, nil
}

// Invalidate marks the entry for key stale, if any. An in-flight fill for the
// key is not waited on; its result is discarded by the generation check.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	e := c.entries[key]
	c.mu.Unlock()
	if e != nil {
		e.gen.Add(1)
	}
}

// InvalidateAll marks every entry stale.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.gen.Add(1)
	}
}

func (c *Cache) entry(key string) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	if e == nil {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	return e
}

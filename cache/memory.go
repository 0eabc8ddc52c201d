package cache

import (
	"sync"
	"time"

	"github.com/jonwraymond/futurecost/calc"
)

// Memory is an in-memory bounded cache of calculation results.
type Memory struct {
	mu      sync.Mutex
	entries map[string]*Entry
	policy  Policy

	now func() time.Time // overridable in tests
}

// NewMemory creates a new in-memory cache with the given policy.
func NewMemory(policy Policy) *Memory {
	return &Memory{
		entries: make(map[string]*Entry),
		policy:  policy.withDefaults(),
		now:     time.Now,
	}
}

// Get retrieves the entry for key. Returns (nil, false) on miss.
// Expired entries are still returned; check servability with Valid.
func (c *Memory) Get(key string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	return entry, ok
}

// Put inserts or overwrites the entry for key with InsertedAt = now and
// a hit count of one. If the store then exceeds its bound, exactly one
// entry with the smallest InsertedAt is evicted. Ties are broken by the
// smallest key so eviction stays deterministic.
func (c *Memory) Put(key string, result calc.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &Entry{
		Result:     result,
		InsertedAt: c.now(),
	}
	entry.hits.Store(1)
	c.entries[key] = entry

	if len(c.entries) <= c.policy.MaxEntries {
		return
	}

	// O(n) scan; bounded by MaxEntries
	var oldestKey string
	var oldest *Entry
	for k, e := range c.entries {
		switch {
		case oldest == nil:
			oldestKey, oldest = k, e
		case e.InsertedAt.Before(oldest.InsertedAt):
			oldestKey, oldest = k, e
		case e.InsertedAt.Equal(oldest.InsertedAt) && k < oldestKey:
			oldestKey, oldest = k, e
		}
	}
	delete(c.entries, oldestKey)
}

// RecordHit increments the entry's hit counter. Side effect only: it
// never changes eviction order.
func (c *Memory) RecordHit(e *Entry) {
	if e == nil {
		return
	}
	e.hits.Add(1)
}

// Valid reports whether the entry is still servable under the cache TTL.
// Validity is derived from the insertion time on every call; there is no
// stored expiry flag and no background sweep.
func (c *Memory) Valid(e *Entry) bool {
	if e == nil {
		return false
	}
	return c.now().Sub(e.InsertedAt) < c.policy.TTL
}

// Len returns the number of entries physically present, expired or not.
func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Ensure Memory implements Cache
var _ Cache = (*Memory)(nil)

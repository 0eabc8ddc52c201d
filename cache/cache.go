package cache

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/jonwraymond/futurecost/calc"
)

// Sentinel errors for cache operations.
var (
	ErrInvalidKey = errors.New("cache: key is invalid")
)

// Cache is the interface for storing calculation results.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: entries are owned by the cache; callers must not mutate
//   them beyond RecordHit.
// - Expiry: Get returns entries regardless of age; callers check
//   servability with Valid. Expired entries stay physically present
//   until evicted or overwritten.
type Cache interface {
	// Get retrieves the entry for key. Returns (nil, false) on miss.
	Get(key string) (*Entry, bool)

	// Put inserts or overwrites the entry for key, evicting the oldest
	// entry by insertion time when the store would exceed its bound.
	Put(key string, result calc.Result)

	// RecordHit increments the entry's hit counter. It has no effect on
	// eviction order, which is insertion-time based.
	RecordHit(e *Entry)

	// Valid reports whether the entry is still servable.
	Valid(e *Entry) bool
}

// Entry is one cached calculation result.
type Entry struct {
	Result     calc.Result
	InsertedAt time.Time

	hits atomic.Int64
}

// HitCount returns how many times this entry has been served.
// A fresh insertion counts as the first hit.
func (e *Entry) HitCount() int64 {
	return e.hits.Load()
}

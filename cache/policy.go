package cache

import "time"

// Policy configures retention for the calculation cache.
type Policy struct {
	// TTL is how long an entry stays servable after insertion.
	// If zero, DefaultTTL is used.
	TTL time.Duration

	// MaxEntries bounds the store. Exceeding it on insertion evicts the
	// entry with the smallest insertion time. If zero, DefaultMaxEntries
	// is used.
	MaxEntries int
}

// Retention defaults.
const (
	DefaultTTL        = 10 * time.Minute
	DefaultMaxEntries = 100
)

// DefaultPolicy returns the default retention policy:
// entries live 10 minutes, at most 100 of them.
func DefaultPolicy() Policy {
	return Policy{
		TTL:        DefaultTTL,
		MaxEntries: DefaultMaxEntries,
	}
}

func (p Policy) withDefaults() Policy {
	if p.TTL <= 0 {
		p.TTL = DefaultTTL
	}
	if p.MaxEntries <= 0 {
		p.MaxEntries = DefaultMaxEntries
	}
	return p
}

package resilience

import (
	"sync"
	"time"
)

// DefaultMinInterval is the default minimum spacing between two
// consecutive outbound requests.
const DefaultMinInterval = 1000 * time.Millisecond

// GateConfig configures the request spacing gate.
type GateConfig struct {
	// MinInterval is the minimum elapsed time required between two
	// consecutive completed requests. Default: 1000ms.
	MinInterval time.Duration
}

// Gate enforces a minimum spacing between outbound requests.
//
// The gate does not schedule anything itself. Callers that are blocked
// mark their own pending-retry state and come back after Remaining().
type Gate struct {
	mu            sync.Mutex
	interval      time.Duration
	lastCompleted time.Time

	now func() time.Time // overridable in tests
}

// NewGate creates a new spacing gate.
func NewGate(config GateConfig) *Gate {
	if config.MinInterval <= 0 {
		config.MinInterval = DefaultMinInterval
	}
	return &Gate{
		interval: config.MinInterval,
		now:      time.Now,
	}
}

// Allow reports whether a request may be sent now. Before the first
// completed request the gate always allows.
func (g *Gate) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lastCompleted.IsZero() {
		return true
	}
	return g.now().Sub(g.lastCompleted) >= g.interval
}

// Remaining returns how long until the gate allows again, clamped to >= 0.
func (g *Gate) Remaining() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.lastCompleted.IsZero() {
		return 0
	}
	d := g.interval - g.now().Sub(g.lastCompleted)
	if d < 0 {
		return 0
	}
	return d
}

// MarkCompleted records that a request's outcome is known. Called only
// on success or definitive failure; a rejected request (429) must not
// advance the clock.
func (g *Gate) MarkCompleted() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastCompleted = g.now()
}

// LastCompleted returns the time of the last completed request, zero if
// none has completed yet.
func (g *Gate) LastCompleted() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastCompleted
}

// Interval returns the configured minimum spacing.
func (g *Gate) Interval() time.Duration {
	return g.interval
}

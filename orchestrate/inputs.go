package orchestrate

import (
	"sync"

	"github.com/jonwraymond/futurecost/calc"
)

// Inputs is the single source of truth for the widget's current input
// values. Timer-fired work (debounce settles, queued retries) snapshots
// it at fire time instead of acting on values captured when the work was
// scheduled, so a retry never acts on stale slider positions.
type Inputs struct {
	mu  sync.Mutex
	req calc.Request
}

// NewInputs creates an input holder with the given initial values.
func NewInputs(initial calc.Request) *Inputs {
	return &Inputs{req: initial}
}

// Set replaces the current input values.
func (i *Inputs) Set(req calc.Request) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.req = req
}

// Snapshot returns the current input values.
func (i *Inputs) Snapshot() calc.Request {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.req
}

package health

import (
	"context"
	"time"
)

// Status is the outcome class of a probe.
type Status int

const (
	// StatusHealthy indicates the service answered normally.
	StatusHealthy Status = iota
	// StatusDegraded indicates the service answered but with a problem
	// response, such as a rate-limit status.
	StatusDegraded
	// StatusUnhealthy indicates the service could not be reached.
	StatusUnhealthy
)

func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result is the outcome of a single probe.
type Result struct {
	Status    Status
	Message   string
	Duration  time.Duration
	Timestamp time.Time
	Err       error
}

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc wraps fn as a named Checker.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

func (f *CheckerFunc) Name() string { return f.name }

func (f *CheckerFunc) Check(ctx context.Context) Result { return f.fn(ctx) }

package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for calculation requests and outcomes.
var (
	ErrInvalidCost  = errors.New("calc: current cost must be positive")
	ErrInvalidRate  = errors.New("calc: inflation rate must not be negative")
	ErrInvalidYears = errors.New("calc: number of years must be positive")

	// ErrRateLimited is returned when the calculation service rejects a
	// request for arriving too fast (HTTP 429 or an in-payload 429 status).
	// A rate-limited attempt is not completed work: it must not update the
	// cache and must not advance the request spacing clock.
	ErrRateLimited = errors.New("calc: rate limited by calculation service")
)

// Request holds the three user inputs for one calculation.
type Request struct {
	// Cost is the current cost of the item. Must be positive.
	Cost float64

	// Rate is the annual inflation rate in percent. Must not be negative.
	Rate float64

	// Years is the horizon in whole years. Must be positive.
	Years int
}

// Validate checks the request against the input constraints.
func (r Request) Validate() error {
	if r.Cost <= 0 {
		return ErrInvalidCost
	}
	if r.Rate < 0 {
		return ErrInvalidRate
	}
	if r.Years <= 0 {
		return ErrInvalidYears
	}
	return nil
}

// Key returns the canonical cache key for this request.
// Two requests produce the same key iff all three inputs are identical.
func (r Request) Key() string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(r.Cost, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(r.Rate, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(r.Years))
	return b.String()
}

// Result is a completed calculation. Immutable once produced: it comes
// only from a successful service response or a cache hit.
type Result struct {
	CurrentCost   float64
	InflationRate float64
	NoYears       float64
	FutureAmount  float64
}

// InflationCost returns the difference between the future amount and the
// current cost.
func (r Result) InflationCost() float64 {
	return r.FutureAmount - r.CurrentCost
}

// StatusError is a logical failure reported by the calculation service,
// either as a non-2xx HTTP status or as an in-payload status other
// than 200.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("calc: calculation failed: %s (status %d)", e.Message, e.Code)
	}
	return fmt.Sprintf("calc: calculation failed with status %d", e.Code)
}

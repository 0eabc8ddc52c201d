package present

import (
	"errors"

	"github.com/jonwraymond/futurecost/calc"
	"github.com/jonwraymond/futurecost/orchestrate"
)

// DefaultSharePct is the chart split used before any result arrives.
const DefaultSharePct = 50.0

// User-facing error text. The rate-limit case gets its own message; every
// other failure shows the underlying reason when one exists.
const (
	RateLimitedMessage  = "Too many requests. Please wait a moment and try again."
	GenericErrorMessage = "Calculation failed. Please try again."
)

// Display holds everything the view layer needs, already formatted.
type Display struct {
	CurrentCost   string
	FutureValue   string
	InflationCost string
	SharePct      float64
	Loading       bool
	ErrorMsg      string
	CanExport     bool
}

// Derive translates orchestrator state into display values. Export is
// enabled exactly when a result exists; without one the chart falls back
// to an even split and the cost column echoes the request.
func Derive(req calc.Request, st orchestrate.State) Display {
	d := Display{
		CurrentCost: FormatINR(req.Cost),
		SharePct:    DefaultSharePct,
		Loading:     st.Loading,
		ErrorMsg:    errorMessage(st.Err),
	}

	if st.Result != nil {
		res := st.Result
		d.CurrentCost = FormatINR(res.CurrentCost)
		d.FutureValue = FormatINR(res.FutureAmount)
		d.InflationCost = FormatINR(res.InflationCost())
		d.SharePct = Share(res)
		d.CanExport = true
	}
	return d
}

// Share is the current cost's percentage of current plus future value.
func Share(res *calc.Result) float64 {
	total := res.CurrentCost + res.FutureAmount
	if total <= 0 {
		return DefaultSharePct
	}
	return res.CurrentCost / total * 100
}

func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, calc.ErrRateLimited):
		return RateLimitedMessage
	}
	var statusErr *calc.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericErrorMessage
}

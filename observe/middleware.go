package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/futurecost/calc"
)

// FetchFunc is the signature of the remote calculation fetch.
type FetchFunc func(ctx context.Context, req calc.Request) (calc.Result, error)

// Middleware wraps the calculation fetch with observability
// (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe FetchFunc.
//   - Errors: errors from the wrapped fetch are recorded and propagated
//     unchanged, so the coordinator's error taxonomy is untouched.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Wrap wraps a FetchFunc with tracing, metrics, and logging.
func (m *Middleware) Wrap(fn FetchFunc) FetchFunc {
	log := m.logger.WithComponent("fetch")

	return func(ctx context.Context, req calc.Request) (calc.Result, error) {
		ctx, span := m.tracer.StartSpan(ctx, req)

		start := time.Now()
		result, err := fn(ctx, req)
		duration := time.Since(start)

		m.tracer.EndSpan(span, err)
		m.metrics.RecordFetch(ctx, duration, err)

		fields := []Field{
			{Key: "cost", Value: req.Cost},
			{Key: "rate", Value: req.Rate},
			{Key: "years", Value: req.Years},
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			log.Error(ctx, "calculation fetch failed", fields...)
		} else {
			fields = append(fields, Field{Key: "future_amount", Value: result.FutureAmount})
			log.Info(ctx, "calculation fetch completed", fields...)
		}

		return result, err
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

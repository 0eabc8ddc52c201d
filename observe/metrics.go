package observe

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/futurecost/calc"
)

// Metrics records orchestration metrics for the calculator widget.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordFetch records one remote calculation attempt with its
	// duration and outcome.
	RecordFetch(ctx context.Context, duration time.Duration, err error)

	// RecordCacheHit records a calculation served from the cache.
	RecordCacheHit(ctx context.Context)

	// RecordDeferred records a request deferred by the spacing gate.
	RecordDeferred(ctx context.Context)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter         metric.Meter
	fetchCount    metric.Int64Counter
	fetchErrors   metric.Int64Counter
	fetchDuration metric.Float64Histogram
	cacheHits     metric.Int64Counter
	deferred      metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	fetchCount, err := meter.Int64Counter(
		"calc.fetch.total",
		metric.WithDescription("Total number of remote calculation fetches"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	fetchErrors, err := meter.Int64Counter(
		"calc.fetch.errors",
		metric.WithDescription("Total number of failed calculation fetches"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		"calc.fetch.duration_ms",
		metric.WithDescription("Remote calculation fetch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"calc.cache.hits",
		metric.WithDescription("Calculations served from the result cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	deferred, err := meter.Int64Counter(
		"calc.requests.deferred",
		metric.WithDescription("Requests deferred by the minimum-spacing gate"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:         meter,
		fetchCount:    fetchCount,
		fetchErrors:   fetchErrors,
		fetchDuration: fetchDuration,
		cacheHits:     cacheHits,
		deferred:      deferred,
	}, nil
}

// RecordFetch records metrics for one remote calculation attempt.
func (m *metricsImpl) RecordFetch(ctx context.Context, duration time.Duration, err error) {
	outcome := "success"
	switch {
	case errors.Is(err, calc.ErrRateLimited):
		outcome = "rate_limited"
	case err != nil:
		outcome = "error"
	}

	opt := metric.WithAttributes(attribute.String("outcome", outcome))

	m.fetchCount.Add(ctx, 1, opt)
	if err != nil {
		m.fetchErrors.Add(ctx, 1, opt)
	}
	m.fetchDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordCacheHit records a calculation served from the cache.
func (m *metricsImpl) RecordCacheHit(ctx context.Context) {
	m.cacheHits.Add(ctx, 1)
}

// RecordDeferred records a request deferred by the spacing gate.
func (m *metricsImpl) RecordDeferred(ctx context.Context) {
	m.deferred.Add(ctx, 1)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (noopMetrics) RecordFetch(context.Context, time.Duration, error) {}
func (noopMetrics) RecordCacheHit(context.Context)                    {}
func (noopMetrics) RecordDeferred(context.Context)                    {}

// NopMetrics returns a Metrics that discards everything.
func NopMetrics() Metrics {
	return noopMetrics{}
}

package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/jonwraymond/futurecost/calc"
)

// fetchSpanName is the span name for every remote calculation fetch.
const fetchSpanName = "calc.fetch"

// Tracer wraps OpenTelemetry tracing with fetch-specific span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a remote calculation fetch.
	StartSpan(ctx context.Context, req calc.Request) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span carrying the request triple as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, req calc.Request) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.Float64("calc.current_cost", req.Cost),
		attribute.Float64("calc.inflation_rate", req.Rate),
		attribute.Int("calc.no_years", req.Years),
	}

	return t.tracer.Start(ctx, fetchSpanName,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NopTracer returns a no-op tracer.
func NopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, _ calc.Request) (context.Context, trace.Span) {
	return t.noop.Start(ctx, fetchSpanName)
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}

// Package observe provides observability primitives for the calculator
// widget: structured JSON logging, OpenTelemetry tracing and metrics
// around the remote calculation fetch, and exporter wiring.
//
// It is a pure instrumentation library: no calculation, no transport, no
// I/O beyond exporter setup. The widget wires the observer into the
// request coordinator and the fetch path.
package observe

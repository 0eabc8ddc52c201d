package exporters

import (
	"context"
	"os"
	"testing"
)

func TestNewTracingExporter(t *testing.T) {
	ctx := context.Background()

	exp, err := NewTracingExporter(ctx, "none")
	if err != nil || exp == nil {
		t.Errorf("none exporter: exp=%v err=%v", exp, err)
	}

	exp, err = NewTracingExporter(ctx, "stdout")
	if err != nil || exp == nil {
		t.Errorf("stdout exporter: exp=%v err=%v", exp, err)
	}

	if _, err = NewTracingExporter(ctx, "bogus"); err == nil {
		t.Error("unknown exporter name should error")
	}
}

func TestNewTracingExporter_OTLPRequiresEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	os.Unsetenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")
	os.Unsetenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")

	if _, err := NewTracingExporter(context.Background(), "otlp"); err == nil {
		t.Error("otlp without endpoint should error")
	}
}

func TestNewMetricsReader(t *testing.T) {
	ctx := context.Background()

	reader, err := NewMetricsReader(ctx, "none")
	if err != nil || reader != nil {
		t.Errorf("none reader: reader=%v err=%v", reader, err)
	}

	reader, err = NewMetricsReader(ctx, "prometheus")
	if err != nil || reader == nil {
		t.Errorf("prometheus reader: reader=%v err=%v", reader, err)
	}

	if _, err = NewMetricsReader(ctx, "bogus"); err == nil {
		t.Error("unknown reader name should error")
	}
}

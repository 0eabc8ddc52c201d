// Command futurecost is a terminal widget that projects the future value
// of an expense under inflation. Input changes are debounced, requests to
// the remote calculation service are spaced and de-duplicated, responses
// are cached, and the result can be exported as a PDF report or an SVG
// chart.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jonwraymond/futurecost/client"
	"github.com/jonwraymond/futurecost/health"
	"github.com/jonwraymond/futurecost/observe"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "futurecost:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "futurecost",
		Tracing: observe.TracingConfig{
			Enabled:   true,
			Exporter:  cfg.TraceExporter,
			SamplePct: 1.0,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  true,
			Exporter: cfg.MetricExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   cfg.LogLevel,
		},
	})
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(ctx)
	}()

	log := obs.Logger().WithComponent("main")

	checker, err := health.NewEndpointChecker(health.EndpointCheckerConfig{Endpoint: cfg.Endpoint})
	if err != nil {
		return err
	}
	if probe := checker.Check(ctx); probe.Status != health.StatusHealthy {
		log.Warn(ctx, "calculation service probe failed",
			observe.Field{Key: "status", Value: probe.Status.String()},
			observe.Field{Key: "message", Value: probe.Message})
	}

	cl, err := client.New(client.Config{
		Endpoint: cfg.Endpoint,
		APIKey:   cfg.APIKey,
	})
	if err != nil {
		return err
	}

	metrics, err := observe.NewMetrics(obs.Meter())
	if err != nil {
		return fmt.Errorf("setting up metrics: %w", err)
	}
	mw := observe.NewMiddleware(observe.NewTracer(obs.Tracer()), metrics, obs.Logger())
	fetch := mw.Wrap(cl.Calculate)

	m, err := newModel(fetch, obs.Logger(), metrics, cfg.ReportDir)
	if err != nil {
		return err
	}
	defer m.close()

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

package main

import (
	"fmt"
	"os"

	"github.com/jonwraymond/futurecost/secret"
)

// config is assembled from the environment. Endpoint and API key are
// required; everything else has a default.
type config struct {
	Endpoint       string
	APIKey         string
	LogLevel       string
	TraceExporter  string
	MetricExporter string
	ReportDir      string
}

func loadConfig() (config, error) {
	endpoint, err := secret.ExpandEnvStrict("${FUTURECOST_ENDPOINT}")
	if err != nil {
		return config{}, fmt.Errorf("loading endpoint: %w", err)
	}
	apiKey, err := secret.ExpandEnvStrict("${FUTURECOST_API_KEY}")
	if err != nil {
		return config{}, fmt.Errorf("loading api key: %w", err)
	}

	return config{
		Endpoint:       endpoint,
		APIKey:         apiKey,
		LogLevel:       envOr("FUTURECOST_LOG_LEVEL", "info"),
		TraceExporter:  envOr("FUTURECOST_TRACE_EXPORTER", "none"),
		MetricExporter: envOr("FUTURECOST_METRIC_EXPORTER", "none"),
		ReportDir:      envOr("FUTURECOST_REPORT_DIR", "."),
	}, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

package main

import (
	"os"
	"strings"
	"testing"
)

func TestLoadConfig_MissingEndpoint(t *testing.T) {
	t.Setenv("FUTURECOST_API_KEY", "k-123")
	// t.Setenv registers the restore; the unset makes the variable
	// genuinely absent rather than empty.
	t.Setenv("FUTURECOST_ENDPOINT", "")
	os.Unsetenv("FUTURECOST_ENDPOINT")

	_, err := loadConfig()
	if err == nil {
		t.Fatal("expected error for missing endpoint")
	}
	if !strings.Contains(err.Error(), "FUTURECOST_ENDPOINT") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("FUTURECOST_ENDPOINT", "https://calc.example.com/v1")
	t.Setenv("FUTURECOST_API_KEY", "k-123")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Endpoint != "https://calc.example.com/v1" || cfg.APIKey != "k-123" {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.TraceExporter != "none" || cfg.MetricExporter != "none" {
		t.Errorf("exporters = %q/%q, want none/none", cfg.TraceExporter, cfg.MetricExporter)
	}
	if cfg.ReportDir != "." {
		t.Errorf("ReportDir = %q, want .", cfg.ReportDir)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("FUTURECOST_ENDPOINT", "https://calc.example.com/v1")
	t.Setenv("FUTURECOST_API_KEY", "k-123")
	t.Setenv("FUTURECOST_LOG_LEVEL", "debug")
	t.Setenv("FUTURECOST_METRIC_EXPORTER", "prometheus")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.MetricExporter != "prometheus" {
		t.Errorf("config = %+v", cfg)
	}
}

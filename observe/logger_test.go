package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("log line is not valid JSON: %q: %v", line, err)
		}
		entries = append(entries, m)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	log.Debug(ctx, "debug msg")
	log.Info(ctx, "info msg")
	log.Warn(ctx, "warn msg")
	log.Error(ctx, "error msg")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("got %d entries at warn level, want 2", len(entries))
	}
	if entries[0]["level"] != "warn" || entries[1]["level"] != "error" {
		t.Errorf("unexpected levels: %v, %v", entries[0]["level"], entries[1]["level"])
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("info", &buf)

	log.WithComponent("coordinator").Info(context.Background(), "request deferred")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0]["component"] != "coordinator" {
		t.Errorf("component = %v, want coordinator", entries[0]["component"])
	}
	if entries[0]["msg"] != "request deferred" {
		t.Errorf("msg = %v", entries[0]["msg"])
	}
}

func TestLogger_RedactsCredentialFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithWriter("info", &buf)

	log.Info(context.Background(), "fetch issued",
		Field{Key: "api_key", Value: "super-secret"},
		Field{Key: "key", Value: "also-secret"},
		Field{Key: "years", Value: 10},
	)

	entries := decodeLines(t, &buf)
	if entries[0]["api_key"] != "[REDACTED]" {
		t.Errorf("api_key = %v, want [REDACTED]", entries[0]["api_key"])
	}
	if entries[0]["key"] != "[REDACTED]" {
		t.Errorf("key = %v, want [REDACTED]", entries[0]["key"])
	}
	if entries[0]["years"] != float64(10) {
		t.Errorf("years = %v, want 10", entries[0]["years"])
	}
	if strings.Contains(buf.String(), "super-secret") {
		t.Error("credential value leaked into the log stream")
	}
}

func TestLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	if lvl := ParseLogLevel("verbose"); lvl != LevelInfo {
		t.Errorf("ParseLogLevel(verbose) = %v, want LevelInfo", lvl)
	}
}

func TestNopLogger_Silent(t *testing.T) {
	// Must not panic and must produce nothing observable
	log := NopLogger()
	log.Info(context.Background(), "into the void")
	log.WithComponent("x").Error(context.Background(), "still nothing")
}

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"json", Config{Level: "info", Format: "json"}, false},
		{"text", Config{Level: "debug", Format: "text"}, false},
		{"console", Config{Level: "warn", Format: "console"}, false},
		{"defaults", Config{}, false},
		{"upper case", Config{Level: "ERROR", Format: "JSON"}, false},
		{"invalid level", Config{Level: "invalid"}, true},
		{"invalid format", Config{Format: "invalid"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"Info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "warn", Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below warn were logged: %s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("warn/error messages missing: %s", out)
	}
}

func TestLogger_JSONFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, _ := New(Config{Level: "info", Format: "json", Writer: buf})

	logger.With("component", "edm.validator").Info("structural pass complete", "visited", 12)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "structural pass complete" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["component"] != "edm.validator" {
		t.Errorf("component = %v", entry["component"])
	}
	if entry["visited"] != float64(12) {
		t.Errorf("visited = %v", entry["visited"])
	}
}

func TestLogger_ConsoleOmitsTime(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, _ := New(Config{Format: "console", Writer: buf})

	logger.Info("hello", "errors", 0)

	out := buf.String()
	if strings.Contains(out, "time=") {
		t.Errorf("console output has a timestamp: %s", out)
	}
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "errors=0") {
		t.Errorf("console output = %s", out)
	}
}

func TestLogger_ContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, _ := New(Config{Level: "debug", Format: "json", Writer: buf})

	ctx := WithRunID(context.Background(), "run-1")
	ctx = WithModel(ctx, "sales.yaml")
	ctx = WithVersion(ctx, "4.01")

	logger.InfoContext(ctx, "validation complete", "valid", true)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal(err)
	}
	for key, want := range map[string]any{"run_id": "run-1", "model": "sales.yaml", "version": "4.01", "valid": true} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %v", key, entry[key], want)
		}
	}
}

func TestLogger_WithContextWithoutFields(t *testing.T) {
	logger, _ := New(Config{Writer: &bytes.Buffer{}})
	if got := logger.WithContext(context.Background()); got != logger {
		t.Error("WithContext() without fields should return the same logger")
	}
}

func TestLogger_Slog(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, _ := New(Config{Level: "info", Format: "text", Writer: buf})

	logger.Slog().Info("through slog")
	if !strings.Contains(buf.String(), "through slog") {
		t.Errorf("Slog() logger did not write to the configured writer: %s", buf.String())
	}
	if logger.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v", logger.Level())
	}
}

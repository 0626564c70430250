package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edmval.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
validation:
  version: "4.01"
  message_catalog: messages.yaml
  max_concurrency: 8

telemetry:
  logging:
    level: debug
    format: json
  metrics:
    enabled: true
    listen_address: "0.0.0.0:9100"

reports:
  enabled: true
  driver: sqlite
  path: ./reports.db
  busy_timeout: 2s
  retention_days: 14

watch:
  debounce: 250ms
  extensions: [".yaml"]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Validation.Version != "4.01" {
		t.Errorf("Validation.Version = %q, want 4.01", cfg.Validation.Version)
	}
	if cfg.Validation.MaxConcurrency != 8 {
		t.Errorf("Validation.MaxConcurrency = %d, want 8", cfg.Validation.MaxConcurrency)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Telemetry.Logging.Format)
	}
	if !cfg.Telemetry.Metrics.Enabled || cfg.Telemetry.Metrics.ListenAddress != "0.0.0.0:9100" {
		t.Errorf("Metrics = %+v", cfg.Telemetry.Metrics)
	}
	if cfg.Reports.Driver != "sqlite" || cfg.Reports.BusyTimeout != 2*time.Second {
		t.Errorf("Reports = %+v", cfg.Reports)
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 250ms", cfg.Watch.Debounce)
	}

	// Defaults fill what the file leaves out.
	if cfg.Telemetry.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("Metrics.Namespace = %q, want default", cfg.Telemetry.Metrics.Namespace)
	}
	if cfg.Reports.PruneSchedule != DefaultReportsPruneSchedule {
		t.Errorf("Reports.PruneSchedule = %q, want default", cfg.Reports.PruneSchedule)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "validation: [unclosed",
			wantErr: "failed to parse",
		},
		{
			name:    "invalid version",
			content: "validation:\n  version: \"3.0\"\n",
			wantErr: "validation.version",
		},
		{
			name:    "invalid driver",
			content: "reports:\n  driver: postgres\n",
			wantErr: "reports.driver",
		},
		{
			name:    "invalid duration",
			content: "watch:\n  debounce: soon\n",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadConfig() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "validation:\n  version: \"4.0\"\nreports:\n  path: file.db\n")

	t.Setenv("EDMVAL_VALIDATION_VERSION", "4.01")
	t.Setenv("EDMVAL_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("EDMVAL_REPORTS_ENABLED", "true")
	t.Setenv("EDMVAL_REPORTS_PATH", "env.db")
	t.Setenv("EDMVAL_REPORTS_RETENTION_DAYS", "7")
	t.Setenv("EDMVAL_WATCH_DEBOUNCE", "1s")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}

	if cfg.Validation.Version != "4.01" {
		t.Errorf("Validation.Version = %q, want env value 4.01", cfg.Validation.Version)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Telemetry.Logging.Level)
	}
	if !cfg.Reports.Enabled || cfg.Reports.Path != "env.db" || cfg.Reports.RetentionDays != 7 {
		t.Errorf("Reports = %+v", cfg.Reports)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Watch.Debounce = %v, want 1s", cfg.Watch.Debounce)
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err != nil {
			t.Fatalf("LoadConfigWithEnvOverrides(%q) error = %v", path, err)
		}
		if cfg.Validation.Version != DefaultVersion {
			t.Errorf("Validation.Version = %q, want default", cfg.Validation.Version)
		}
	}
}

func TestLoadConfigWithEnvOverrides_BadValues(t *testing.T) {
	t.Setenv("EDMVAL_REPORTS_RETENTION_DAYS", "a week")
	t.Setenv("EDMVAL_TELEMETRY_METRICS_ENABLED", "maybe")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("error = nil, want invalid environment values")
	}
	for _, name := range []string{"EDMVAL_REPORTS_RETENTION_DAYS", "EDMVAL_TELEMETRY_METRICS_ENABLED"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
}

func TestLoadConfigWithEnvOverrides_ValidatesOverrides(t *testing.T) {
	t.Setenv("EDMVAL_REPORTS_DRIVER", "oracle")

	_, err := LoadConfigWithEnvOverrides("")
	var verr ValidationError
	if !errors.As(err, &verr) || !verr.Has("reports.driver") {
		t.Errorf("error = %v, want ValidationError on reports.driver", err)
	}
}

package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"validation.version", cfg.Validation.Version, DefaultVersion},
		{"validation.max_concurrency", cfg.Validation.MaxConcurrency, DefaultMaxConcurrency},
		{"validation.max_file_size", cfg.Validation.MaxFileSize, DefaultMaxFileSize},
		{"telemetry.logging.level", cfg.Telemetry.Logging.Level, DefaultLoggingLevel},
		{"telemetry.logging.format", cfg.Telemetry.Logging.Format, DefaultLoggingFormat},
		{"telemetry.metrics.enabled", cfg.Telemetry.Metrics.Enabled, false},
		{"telemetry.metrics.path", cfg.Telemetry.Metrics.Path, DefaultMetricsPath},
		{"reports.enabled", cfg.Reports.Enabled, false},
		{"reports.driver", cfg.Reports.Driver, DefaultReportsDriver},
		{"reports.busy_timeout", cfg.Reports.BusyTimeout, 5 * time.Second},
		{"reports.retention_days", cfg.Reports.RetentionDays, DefaultReportsRetentionDays},
		{"watch.debounce", cfg.Watch.Debounce, DefaultWatchDebounce},
		{"watch.extensions", len(cfg.Watch.Extensions), 2},
		{"telemetry.metrics.duration_buckets", len(cfg.Telemetry.Metrics.DurationBuckets), len(DefaultDurationBuckets)},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestApplyDefaults_KeepsSetValues(t *testing.T) {
	cfg := &Config{
		Validation: ValidationConfig{Version: "4.01", MaxConcurrency: 1},
		Reports:    ReportsConfig{Driver: "memory", RetentionDays: 3},
		Watch:      WatchConfig{Debounce: time.Second, Extensions: []string{".edm"}},
	}
	ApplyDefaults(cfg)
	ApplyDefaults(cfg)

	if cfg.Validation.Version != "4.01" || cfg.Validation.MaxConcurrency != 1 {
		t.Errorf("Validation = %+v", cfg.Validation)
	}
	if cfg.Reports.Driver != "memory" || cfg.Reports.RetentionDays != 3 {
		t.Errorf("Reports = %+v", cfg.Reports)
	}
	if cfg.Watch.Debounce != time.Second || len(cfg.Watch.Extensions) != 1 {
		t.Errorf("Watch = %+v", cfg.Watch)
	}
}

func TestApplyDefaults_DoesNotShareSlices(t *testing.T) {
	cfg := Default()
	cfg.Watch.Extensions[0] = ".changed"
	if DefaultWatchExtensions[0] != ".yaml" {
		t.Error("ApplyDefaults aliased DefaultWatchExtensions")
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("Validate(Default()) error = %v", err)
	}
}

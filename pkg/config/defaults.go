package config

import "time"

// Default values for configuration fields.
const (
	// Validation defaults
	DefaultVersion        = "4.0"
	DefaultMaxConcurrency = 4
	DefaultMaxFileSize    = int64(10 * 1024 * 1024)

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "console"
	DefaultMetricsNamespace = "edmval"
	DefaultMetricsSubsystem = "validator"
	DefaultMetricsAddress   = "127.0.0.1:9090"
	DefaultMetricsPath      = "/metrics"

	// Report defaults
	DefaultReportsDriver        = "sqlite3"
	DefaultReportsPath          = "data/reports.db"
	DefaultReportsBusyTimeout   = 5 * time.Second
	DefaultReportsRetentionDays = 30
	DefaultReportsPruneSchedule = "0 3 * * *"

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond
)

// DefaultDurationBuckets are the validation duration histogram buckets.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// DefaultWatchExtensions are the model file extensions watched in
// directories.
var DefaultWatchExtensions = []string{".yaml", ".yml"}

// ApplyDefaults sets defaults for fields that have zero values.
// It is idempotent.
func ApplyDefaults(cfg *Config) {
	// Validation defaults
	if cfg.Validation.Version == "" {
		cfg.Validation.Version = DefaultVersion
	}
	if cfg.Validation.MaxConcurrency == 0 {
		cfg.Validation.MaxConcurrency = DefaultMaxConcurrency
	}
	if cfg.Validation.MaxFileSize == 0 {
		cfg.Validation.MaxFileSize = DefaultMaxFileSize
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}

	// Report defaults
	if cfg.Reports.Driver == "" {
		cfg.Reports.Driver = DefaultReportsDriver
	}
	if cfg.Reports.Path == "" {
		cfg.Reports.Path = DefaultReportsPath
	}
	if cfg.Reports.BusyTimeout == 0 {
		cfg.Reports.BusyTimeout = DefaultReportsBusyTimeout
	}
	if cfg.Reports.RetentionDays == 0 {
		cfg.Reports.RetentionDays = DefaultReportsRetentionDays
	}
	if cfg.Reports.PruneSchedule == "" {
		cfg.Reports.PruneSchedule = DefaultReportsPruneSchedule
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

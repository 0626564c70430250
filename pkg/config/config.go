package config

import "time"

// Config is the root configuration structure for edmval.
type Config struct {
	// Validation selects the EDM version, message catalog and batch limits.
	Validation ValidationConfig `yaml:"validation"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Reports configures persistence and retention of validation reports.
	Reports ReportsConfig `yaml:"reports"`

	// Watch configures re-validation on file changes.
	Watch WatchConfig `yaml:"watch"`
}

// ValidationConfig contains validator settings.
type ValidationConfig struct {
	// Version is the EDM version models are validated against.
	// Options: "4.0", "4.01"
	// Default: "4.0"
	Version string `yaml:"version"`

	// MessageCatalog is an optional YAML file overriding error messages.
	// It is reloaded in watch mode.
	MessageCatalog string `yaml:"message_catalog"`

	// MaxConcurrency bounds how many models are validated at once when
	// several are given. 0 means unbounded.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// MaxFileSize is the largest model file accepted, in bytes.
	// Default: 10485760 (10MB)
	MaxFileSize int64 `yaml:"max_file_size"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes file:line in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled turns on metrics collection.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the Prometheus metric namespace.
	// Default: "edmval"
	Namespace string `yaml:"namespace"`

	// Subsystem is the Prometheus metric subsystem.
	// Default: "validator"
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is where the watch command serves metrics.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// DurationBuckets are histogram buckets for validation duration, in
	// seconds.
	// Default: [0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// ReportsConfig contains validation report storage configuration.
type ReportsConfig struct {
	// Enabled turns on report persistence.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Driver selects the storage backend.
	// Options: "sqlite3" (cgo), "sqlite" (pure Go), "memory"
	// Default: "sqlite3"
	Driver string `yaml:"driver"`

	// Path is the SQLite database file.
	// Default: "data/reports.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long SQLite waits on a locked database.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// DisableWAL turns off write-ahead logging.
	// Default: false
	DisableWAL bool `yaml:"disable_wal"`

	// RetentionDays is how long reports are kept. 0 keeps them forever.
	// Default: 30
	RetentionDays int `yaml:"retention_days"`

	// MaxReports caps the number of stored reports. 0 means unlimited.
	// Default: 0
	MaxReports int64 `yaml:"max_reports"`

	// PruneSchedule is the cron expression for pruning.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`
}

// WatchConfig contains file watching configuration.
type WatchConfig struct {
	// Debounce is the quiet period before re-validating after a change.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions selects model files inside watched directories.
	// Default: [".yaml", ".yml"]
	Extensions []string `yaml:"extensions"`
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EDMVAL_"

// LoadConfig loads configuration from a YAML file, applies defaults and
// validates it. Environment variables are not consulted.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies environment overrides named EDMVAL_SECTION_FIELD (for example
// EDMVAL_VALIDATION_VERSION). An empty path, or a path that does not exist,
// yields the defaults. Environment variables take precedence over the file.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config
	if path == "" {
		cfg = Default()
	} else {
		loaded, err := LoadConfig(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			cfg = Default()
		case err != nil:
			return nil, err
		default:
			cfg = loaded
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies EDMVAL_* variables. A variable that does not
// parse is an error naming it.
func applyEnvOverrides(cfg *Config) error {
	e := envReader{}

	// Validation overrides
	e.str("VALIDATION_VERSION", &cfg.Validation.Version)
	e.str("VALIDATION_MESSAGE_CATALOG", &cfg.Validation.MessageCatalog)
	e.int("VALIDATION_MAX_CONCURRENCY", &cfg.Validation.MaxConcurrency)
	e.int64("VALIDATION_MAX_FILE_SIZE", &cfg.Validation.MaxFileSize)

	// Telemetry overrides
	e.str("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	e.str("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	e.bool("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	e.bool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	e.str("TELEMETRY_METRICS_NAMESPACE", &cfg.Telemetry.Metrics.Namespace)
	e.str("TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	e.str("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)

	// Report overrides
	e.bool("REPORTS_ENABLED", &cfg.Reports.Enabled)
	e.str("REPORTS_DRIVER", &cfg.Reports.Driver)
	e.str("REPORTS_PATH", &cfg.Reports.Path)
	e.duration("REPORTS_BUSY_TIMEOUT", &cfg.Reports.BusyTimeout)
	e.int("REPORTS_RETENTION_DAYS", &cfg.Reports.RetentionDays)
	e.int64("REPORTS_MAX_REPORTS", &cfg.Reports.MaxReports)
	e.str("REPORTS_PRUNE_SCHEDULE", &cfg.Reports.PruneSchedule)

	// Watch overrides
	e.duration("WATCH_DEBOUNCE", &cfg.Watch.Debounce)

	return errors.Join(e.errs...)
}

type envReader struct {
	errs []error
}

func (e *envReader) lookup(name string) (string, bool) {
	val := os.Getenv(EnvPrefix + name)
	return val, val != ""
}

func (e *envReader) fail(name, val string, err error) {
	e.errs = append(e.errs, fmt.Errorf("invalid %s%s=%q: %w", EnvPrefix, name, val, err))
}

func (e *envReader) str(name string, dst *string) {
	if val, ok := e.lookup(name); ok {
		*dst = val
	}
}

func (e *envReader) bool(name string, dst *bool) {
	if val, ok := e.lookup(name); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			e.fail(name, val, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) int(name string, dst *int) {
	if val, ok := e.lookup(name); ok {
		i, err := strconv.Atoi(val)
		if err != nil {
			e.fail(name, val, err)
			return
		}
		*dst = i
	}
}

func (e *envReader) int64(name string, dst *int64) {
	if val, ok := e.lookup(name); ok {
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			e.fail(name, val, err)
			return
		}
		*dst = i
	}
}

func (e *envReader) duration(name string, dst *time.Duration) {
	if val, ok := e.lookup(name); ok {
		d, err := time.ParseDuration(val)
		if err != nil {
			e.fail(name, val, err)
			return
		}
		*dst = d
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/OData/odata.net-sub135/pkg/cli"
	"github.com/OData/odata.net-sub135/pkg/config"
	"github.com/OData/odata.net-sub135/pkg/edm"
	"github.com/OData/odata.net-sub135/pkg/messages"
	"github.com/OData/odata.net-sub135/pkg/report"
	"github.com/OData/odata.net-sub135/pkg/report/storage"
	"github.com/OData/odata.net-sub135/pkg/telemetry/logging"
)

// loadConfig initializes the global configuration from --config.
func loadConfig() (*config.Config, error) {
	if err := config.Initialize(cfgFile); err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// newLogger builds the logger described by cfg. Logs go to stderr so that
// command output on stdout stays machine readable.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    os.Stderr,
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	return logger, nil
}

// resolveVersion applies a --version override to the configured version.
func resolveVersion(cfg *config.Config, override string) (edm.Version, error) {
	s := cfg.Validation.Version
	if override != "" {
		s = override
	}
	version, err := edm.ParseVersion(s)
	if err != nil {
		return "", cli.NewConfigError("validation.version", err.Error())
	}
	return version, nil
}

// loadCatalog returns the message catalog, with the configured overrides
// applied when a catalog file is set.
func loadCatalog(cfg *config.Config, logger *logging.Logger) (*messages.Catalog, error) {
	catalog := messages.NewCatalog(nil, logger.Slog())
	if cfg.Validation.MessageCatalog == "" {
		return catalog, nil
	}
	if err := catalog.Load(cfg.Validation.MessageCatalog); err != nil {
		return nil, cli.NewConfigError("validation.message_catalog", err.Error())
	}
	return catalog, nil
}

// openReportStorage opens the configured report backend.
func openReportStorage(cfg *config.ReportsConfig) (report.Storage, error) {
	switch cfg.Driver {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case storage.DriverCGO, storage.DriverPureGo:
		sqliteConfig := storage.DefaultSQLiteConfig()
		sqliteConfig.Driver = cfg.Driver
		sqliteConfig.Path = cfg.Path
		sqliteConfig.BusyTimeout = cfg.BusyTimeout
		sqliteConfig.WALMode = !cfg.DisableWAL
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create report directory: %w", err)
			}
		}
		return storage.NewSQLiteStorage(sqliteConfig)
	default:
		return nil, fmt.Errorf("unsupported report driver: %s (supported: sqlite3, sqlite, memory)", cfg.Driver)
	}
}

// collectFiles returns the model files named by --file plus the files with
// a model extension directly inside --dir, in a stable order.
func collectFiles(files []string, dir string, extensions []string) ([]string, error) {
	collected := append([]string(nil), files...)

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to list model files: %w", err)
		}
		var found []string
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			ext := filepath.Ext(entry.Name())
			if slices.ContainsFunc(extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
				found = append(found, filepath.Join(dir, entry.Name()))
			}
		}
		slices.Sort(found)
		collected = append(collected, found...)
	}

	if len(collected) == 0 {
		return nil, fmt.Errorf("no model files found (use --file or --dir)")
	}
	return collected, nil
}

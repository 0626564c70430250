package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/OData/odata.net-sub135/pkg/cli"
	"github.com/OData/odata.net-sub135/pkg/config"
	"github.com/OData/odata.net-sub135/pkg/messages"
	"github.com/OData/odata.net-sub135/pkg/report"
	"github.com/OData/odata.net-sub135/pkg/report/retention"
	"github.com/OData/odata.net-sub135/pkg/telemetry/health"
	"github.com/OData/odata.net-sub135/pkg/telemetry/logging"
	"github.com/OData/odata.net-sub135/pkg/telemetry/metrics"
	"github.com/OData/odata.net-sub135/pkg/watch"
)

var watchFlags struct {
	files       []string
	dir         string
	version     string
	format      string
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate model files on change",
	Long: `Validate a model and validate it again whenever one of its files changes.

All files form one model. When validation.message_catalog is set, the catalog
file is watched too and reloaded on change; the model is then re-validated
with the new messages.

With --metrics-addr (or telemetry.metrics.enabled) Prometheus metrics are
served while watching, together with /health, /ready and /version. When reports are enabled, a report is stored for every
run and old reports are pruned on reports.prune_schedule.

Examples:
  # Watch a model
  edmval watch -f sales.yaml

  # Watch all models in a directory and serve metrics
  edmval watch --dir models/ --metrics-addr 127.0.0.1:9090`,
	RunE: watchModels,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringSliceVarP(&watchFlags.files, "file", "f", nil, "model file (repeatable)")
	watchCmd.Flags().StringVarP(&watchFlags.dir, "dir", "d", "", "directory of model files")
	watchCmd.Flags().StringVar(&watchFlags.version, "version", "", "EDM version: 4.0, 4.01 (overrides config)")
	watchCmd.Flags().StringVar(&watchFlags.format, "format", "text", "output format: text, json")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}

func watchModels(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(watchFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if watchFlags.metricsAddr != "" {
		cfg.Telemetry.Metrics.Enabled = true
		cfg.Telemetry.Metrics.ListenAddress = watchFlags.metricsAddr
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger.Slog())

	version, err := resolveVersion(cfg, watchFlags.version)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

	session := &watchSession{
		opts: validationOptions{
			version:     version,
			catalog:     catalog,
			maxFileSize: cfg.Validation.MaxFileSize,
			logger:      logger,
		},
		catalog:    catalog,
		formatter:  cli.NewFormatter(format),
		out:        cmd.OutOrStdout(),
		logger:     logger,
		modelState: health.NewLastError(),
	}
	checker := health.New(2 * time.Second)
	checker.RegisterCheck("model", session.modelState.Check)

	if cfg.Reports.Enabled {
		store, err := openReportStorage(&cfg.Reports)
		if err != nil {
			return cli.NewCommandError("watch", fmt.Errorf("failed to open report storage: %w", err))
		}
		defer store.Close()
		session.store = store

		if cfg.Reports.PruneSchedule != "" {
			pruner := retention.NewPruner(store, retentionConfig(&cfg.Reports))
			if err := pruner.Start(ctx); err != nil {
				return cli.NewCommandError("watch", fmt.Errorf("failed to start pruner: %w", err))
			}
			defer pruner.Stop()
			logger.Info("report pruning scheduled", "next", pruner.NextPruning())
		}
		checker.RegisterCheck("reports", func(ctx context.Context) error {
			_, err := store.Count(ctx, &report.Query{})
			return err
		})
	}

	if cfg.Telemetry.Metrics.Enabled {
		collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
		session.opts.observer = collector
		session.collector = collector

		shutdown := serveHTTP(ctx, &cfg.Telemetry.Metrics, collector, checker, logger)
		defer shutdown()
	}

	return session.run(ctx, watchFlags.files, watchFlags.dir, &cfg.Watch, cfg.Validation.MessageCatalog)
}

// watchSession validates the watched model and reacts to file changes.
type watchSession struct {
	opts       validationOptions
	catalog    *messages.Catalog
	collector  *metrics.Collector
	store      report.Storage
	formatter  cli.Formatter
	logger     *logging.Logger
	modelState *health.LastError

	mu  sync.Mutex
	out io.Writer
}

func (s *watchSession) run(ctx context.Context, files []string, dir string, cfg *config.WatchConfig, catalogPath string) error {
	watchConfig := &watch.Config{
		DebounceInterval: cfg.Debounce,
		Extensions:       cfg.Extensions,
		SkipHidden:       true,
	}
	watchConfig.Paths = append(watchConfig.Paths, files...)
	if dir != "" {
		watchConfig.Paths = append(watchConfig.Paths, dir)
	}
	if catalogPath != "" {
		watchConfig.Paths = append(watchConfig.Paths, catalogPath)
	}

	modelFiles := func() ([]string, error) {
		return collectFiles(files, dir, cfg.Extensions)
	}
	if _, err := modelFiles(); err != nil {
		return cli.NewCommandError("watch", err)
	}

	// A broken model is reported but watching goes on so it can be fixed.
	if err := s.validate(ctx, modelFiles); err != nil {
		s.logger.Error("validation failed", "error", err)
	}

	watcher, err := watch.NewFileWatcher(watchConfig, s.logger.Slog())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer watcher.Stop()

	absCatalog := ""
	if catalogPath != "" {
		absCatalog, _ = filepath.Abs(catalogPath)
	}

	err = watcher.Watch(ctx, func(changed []string) error {
		if absCatalog != "" && slices.Contains(changed, absCatalog) {
			if err := s.reloadCatalog(); err != nil {
				return err
			}
		}
		return s.validate(ctx, modelFiles)
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

func (s *watchSession) reloadCatalog() error {
	err := s.catalog.Reload()
	if s.collector != nil {
		s.collector.RecordReload("messages", err)
	}
	return err
}

// validate loads and validates the model, then prints and stores its report.
func (s *watchSession) validate(ctx context.Context, modelFiles func() ([]string, error)) error {
	files, err := modelFiles()
	if err == nil {
		var r *report.Report
		r, err = validateCombined(ctx, files, s.opts)
		if err == nil {
			s.emit(ctx, r)
		}
	}
	if s.collector != nil {
		s.collector.RecordReload("model", err)
	}
	if s.modelState != nil {
		s.modelState.Set(err)
	}
	return err
}

func (s *watchSession) emit(ctx context.Context, r *report.Report) {
	if s.store != nil {
		if err := s.store.Store(ctx, r); err != nil {
			s.logger.Warn("failed to store validation report", "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.formatter.FormatTo(s.out, []*report.Report{r}); err != nil {
		s.logger.Error("failed to write output", "error", err)
	}
}

// serveHTTP serves metrics and health endpoints. The returned function
// shuts the server down.
func serveHTTP(ctx context.Context, cfg *config.MetricsConfig, collector *metrics.Collector, checker *health.Checker, logger *logging.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, collector.Handler())
	health.Register(mux, checker, Version, GitCommit, BuildDate)

	server := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "address", cfg.ListenAddress, "path", cfg.Path)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", "error", err)
		}
	}
}

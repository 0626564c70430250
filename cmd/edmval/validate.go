package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/OData/odata.net-sub135/pkg/cli"
	"github.com/OData/odata.net-sub135/pkg/config"
	"github.com/OData/odata.net-sub135/pkg/edm"
	edmErrors "github.com/OData/odata.net-sub135/pkg/edm/errors"
	"github.com/OData/odata.net-sub135/pkg/edm/validator"
	"github.com/OData/odata.net-sub135/pkg/edm/yamlmodel"
	"github.com/OData/odata.net-sub135/pkg/report"
	"github.com/OData/odata.net-sub135/pkg/report/retention"
	"github.com/OData/odata.net-sub135/pkg/telemetry/logging"
)

var validateFlags struct {
	files    []string
	dir      string
	version  string
	format   string
	each     bool
	progress bool
	noStore  bool
	lines    int
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate model files",
	Long: `Validate an Entity Data Model described in YAML files.

By default all files form one model, so types may reference types declared
in another file. With --each every file is validated as an independent model,
up to validation.max_concurrency at a time.

When reports are enabled in the configuration, a report is stored for every
validated model and can be listed with "edmval history".

Examples:
  # Validate a model split over two files
  edmval validate -f common.yaml -f sales.yaml

  # Validate against EDM 4.01
  edmval validate -f sales.yaml --version 4.01

  # Validate each model in a directory, JSON output for CI
  edmval validate --dir models/ --each --format json`,
	RunE: validateModels,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringSliceVarP(&validateFlags.files, "file", "f", nil, "model file (repeatable)")
	validateCmd.Flags().StringVarP(&validateFlags.dir, "dir", "d", "", "directory of model files")
	validateCmd.Flags().StringVar(&validateFlags.version, "version", "", "EDM version: 4.0, 4.01 (overrides config)")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json, csv")
	validateCmd.Flags().BoolVar(&validateFlags.each, "each", false, "validate every file as an independent model")
	validateCmd.Flags().BoolVar(&validateFlags.progress, "progress", false, "show progress on stderr (with --each)")
	validateCmd.Flags().BoolVar(&validateFlags.noStore, "no-store", false, "do not store reports even if enabled")
	validateCmd.Flags().IntVar(&validateFlags.lines, "context", 0, "source lines shown around each finding (text format)")
}

func validateModels(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(validateFlags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	slog.SetDefault(logger.Slog())

	version, err := resolveVersion(cfg, validateFlags.version)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	files, err := collectFiles(validateFlags.files, validateFlags.dir, cfg.Watch.Extensions)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	opts := validationOptions{
		version:     version,
		catalog:     catalog,
		concurrency: cfg.Validation.MaxConcurrency,
		maxFileSize: cfg.Validation.MaxFileSize,
		logger:      logger,
	}
	if validateFlags.each && validateFlags.progress {
		opts.progress = cli.NewProgressReporter(cmd.ErrOrStderr())
	}

	ctx := cmdContext(cmd)

	var reports []*report.Report
	if validateFlags.each {
		reports, err = validateEach(ctx, files, opts)
	} else {
		var r *report.Report
		r, err = validateCombined(ctx, files, opts)
		reports = []*report.Report{r}
	}
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	if cfg.Reports.Enabled && !validateFlags.noStore {
		if err := storeReports(ctx, &cfg.Reports, reports); err != nil {
			logger.Warn("failed to store validation reports", "error", err)
		}
	}

	formatter := cli.NewFormatter(format)
	if tf, ok := formatter.(*cli.TextFormatter); ok {
		tf.Context = validateFlags.lines
	}
	if err := formatter.FormatTo(cmd.OutOrStdout(), reports); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	for _, r := range reports {
		if !r.Valid {
			return cli.ErrInvalidModel
		}
	}
	return nil
}

// validationOptions carries what validateCombined and validateEach need.
type validationOptions struct {
	version     edm.Version
	catalog     edmErrors.Catalog
	concurrency int
	maxFileSize int64
	logger      *logging.Logger
	observer    validator.Observer
	progress    cli.ProgressReporter
}

func (o validationOptions) validator() (*validator.Validator, error) {
	observers := multiObserver{}
	if o.observer != nil {
		observers = append(observers, o.observer)
	}
	if o.progress != nil {
		observers = append(observers, progressObserver{o.progress})
	}
	return validator.New(
		validator.WithVersion(o.version),
		validator.WithCatalog(o.catalog),
		validator.WithLogger(o.logger.Slog()),
		validator.WithObserver(observers),
	)
}

func (o validationOptions) parser() *yamlmodel.Parser {
	parser := yamlmodel.NewParser()
	if o.maxFileSize > 0 {
		parser = parser.WithMaxFileSize(o.maxFileSize)
	}
	return parser
}

// validateCombined validates files as one model.
func validateCombined(ctx context.Context, files []string, opts validationOptions) (*report.Report, error) {
	v, err := opts.validator()
	if err != nil {
		return nil, err
	}
	model, err := opts.parser().ParseMulti(files)
	if err != nil {
		return nil, err
	}

	modelPath := strings.Join(files, ",")
	started := time.Now()
	stats := v.Run(model)
	r := report.New(modelPath, opts.version, started, stats)
	logResult(ctx, opts.logger, r)
	return r, nil
}

// validateEach validates every file as an independent model.
func validateEach(ctx context.Context, files []string, opts validationOptions) ([]*report.Report, error) {
	v, err := opts.validator()
	if err != nil {
		return nil, err
	}

	parser := opts.parser()
	models := make([]edm.Model, 0, len(files))
	for _, file := range files {
		model, err := parser.Parse(file)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}

	if opts.progress != nil {
		opts.progress.Start(int64(len(models)))
		defer opts.progress.Finish()
	}

	started := time.Now()
	results, err := v.ValidateAll(ctx, models, opts.concurrency)
	if err != nil {
		return nil, err
	}

	reports := make([]*report.Report, 0, len(results))
	for i, res := range results {
		r := report.New(files[i], opts.version, started, res.Stats)
		logResult(ctx, opts.logger, r)
		reports = append(reports, r)
	}
	return reports, nil
}

func logResult(ctx context.Context, logger *logging.Logger, r *report.Report) {
	ctx = logging.WithRunID(ctx, r.ID)
	ctx = logging.WithModel(ctx, r.ModelPath)
	ctx = logging.WithVersion(ctx, r.Version)
	logger.DebugContext(ctx, "validation complete",
		"valid", r.Valid,
		"errors", r.ErrorCount,
		"visited", r.Visited,
		"duration", r.Duration,
	)
}

// storeReports persists reports and applies the retention limits.
func storeReports(ctx context.Context, cfg *config.ReportsConfig, reports []*report.Report) error {
	store, err := openReportStorage(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, r := range reports {
		if err := store.Store(ctx, r); err != nil {
			return err
		}
	}

	pruner := retention.NewPruner(store, retentionConfig(cfg))
	_, err = pruner.Prune(ctx)
	return err
}

func retentionConfig(cfg *config.ReportsConfig) *retention.Config {
	return &retention.Config{
		RetentionDays: cfg.RetentionDays,
		PruneSchedule: cfg.PruneSchedule,
		MaxReports:    cfg.MaxReports,
	}
}

// multiObserver fans run statistics out to several observers.
type multiObserver []validator.Observer

func (m multiObserver) ObserveValidation(stats validator.Stats) {
	for _, o := range m {
		o.ObserveValidation(stats)
	}
}

// progressObserver advances a progress bar after every run.
type progressObserver struct {
	progress cli.ProgressReporter
}

func (p progressObserver) ObserveValidation(validator.Stats) {
	p.progress.Increment()
}

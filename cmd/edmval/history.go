package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/OData/odata.net-sub135/pkg/cli"
	"github.com/OData/odata.net-sub135/pkg/config"
	"github.com/OData/odata.net-sub135/pkg/report"
	"github.com/OData/odata.net-sub135/pkg/report/retention"
)

var historyFlags struct {
	model   string
	code    string
	valid   bool
	invalid bool
	since   time.Duration
	limit   int
	offset  int
	format  string
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored validation reports",
	Long: `List validation reports stored by "edmval validate" and "edmval watch".

Reports are stored only when reports.enabled is set in the configuration.
Newest reports are listed first.

Examples:
  # Last 20 reports
  edmval history --limit 20

  # Invalid runs of one model during the last day
  edmval history --model sales.yaml --invalid --since 24h

  # Runs that reported a missing key
  edmval history --code KeyMissingOnEntityType`,
	RunE: listHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored report with its findings",
	Args:  cobra.ExactArgs(1),
	RunE:  showReport,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the report retention limits now",
	RunE:  pruneHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd, historyPruneCmd)

	historyCmd.Flags().StringVar(&historyFlags.model, "model", "", "filter by model path")
	historyCmd.Flags().StringVar(&historyFlags.code, "code", "", "filter by error code name")
	historyCmd.Flags().BoolVar(&historyFlags.valid, "valid", false, "only valid runs")
	historyCmd.Flags().BoolVar(&historyFlags.invalid, "invalid", false, "only invalid runs")
	historyCmd.Flags().DurationVar(&historyFlags.since, "since", 0, "only runs started within this duration")
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 50, "max results")
	historyCmd.Flags().IntVar(&historyFlags.offset, "offset", 0, "pagination offset")
	historyCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")
	historyCmd.MarkFlagsMutuallyExclusive("valid", "invalid")

	historyShowCmd.Flags().StringVar(&historyFlags.format, "format", "text", "output format: text, json, csv")
}

// openHistory loads the configuration and opens the report store.
func openHistory() (*config.Config, report.Storage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger.Slog())

	if cfg.Reports.Driver == "memory" {
		return nil, nil, cli.NewConfigError("reports.driver", "the memory driver keeps no history")
	}
	store, err := openReportStorage(&cfg.Reports)
	if err != nil {
		return nil, nil, cli.NewCommandError("history", fmt.Errorf("failed to open report storage: %w", err))
	}
	return cfg, store, nil
}

func listHistory(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(historyFlags.format)
	if err != nil {
		return err
	}

	_, store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	query := buildHistoryQuery(time.Now())
	reports, err := store.Query(cmdContext(cmd), query)
	if err != nil {
		return cli.NewCommandError("history", err)
	}

	var formatter cli.Formatter = &cli.TextFormatter{Summary: true}
	if format != cli.FormatText {
		formatter = cli.NewFormatter(format)
	}
	return formatter.FormatTo(cmd.OutOrStdout(), reports)
}

// buildHistoryQuery turns the history flags into a report query.
func buildHistoryQuery(now time.Time) *report.Query {
	query := &report.Query{
		ModelPath: historyFlags.model,
		Code:      historyFlags.code,
		Limit:     historyFlags.limit,
		Offset:    historyFlags.offset,
		SortOrder: "desc",
	}
	if historyFlags.since > 0 {
		start := now.Add(-historyFlags.since)
		query.StartTime = &start
	}
	switch {
	case historyFlags.valid:
		valid := true
		query.Valid = &valid
	case historyFlags.invalid:
		valid := false
		query.Valid = &valid
	}
	return query
}

func showReport(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(historyFlags.format)
	if err != nil {
		return err
	}

	_, store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Get(cmdContext(cmd), args[0])
	if errors.Is(err, report.ErrNotFound) {
		return cli.NewCommandError("history show", fmt.Errorf("report %s not found", args[0]))
	}
	if err != nil {
		return cli.NewCommandError("history show", err)
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), []*report.Report{r})
}

func pruneHistory(cmd *cobra.Command, args []string) error {
	cfg, store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := retention.NewPruner(store, retentionConfig(&cfg.Reports)).Prune(cmdContext(cmd))
	if err != nil {
		return cli.NewCommandError("history prune", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Pruned %d report(s)\n", deleted)
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/OData/odata.net-sub135/pkg/report"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to keep reports.
	// 0 keeps reports forever.
	RetentionDays int

	// PruneSchedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string

	// MaxReports is the maximum number of reports to keep.
	// 0 means unlimited.
	MaxReports int64
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 30,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner enforces retention limits on stored reports.
type Pruner struct {
	storage   report.Storage
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
	now       func() time.Time
}

// NewPruner creates a retention pruner.
func NewPruner(storage report.Storage, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}

	p := &Pruner{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "report.retention"),
		now:     time.Now,
	}
	p.scheduler = NewScheduler(p)
	return p
}

// Prune deletes reports older than the retention period, then the oldest
// reports beyond MaxReports. It returns the total number deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by age failed: %w", err)
		}
		total += deleted
	}

	if p.config.MaxReports > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return total, fmt.Errorf("prune by count failed: %w", err)
		}
		total += deleted
	}

	if total > 0 {
		p.logger.Info("report pruning completed",
			"total_deleted", total,
			"retention_days", p.config.RetentionDays,
			"max_reports", p.config.MaxReports,
		)
	} else {
		p.logger.Debug("no reports pruned")
	}
	return total, nil
}

func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)

	p.logger.Debug("pruning by age",
		"cutoff_time", cutoff,
		"retention_days", p.config.RetentionDays,
	)

	deleted, err := p.storage.Delete(ctx, &report.Query{EndTime: &cutoff})
	if err != nil {
		return 0, report.NewRetentionError(p.config.RetentionDays, err)
	}
	return deleted, nil
}

// pruneByCount deletes the oldest reports so at most MaxReports remain.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &report.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	if count <= p.config.MaxReports {
		return 0, nil
	}

	excess := int(count - p.config.MaxReports)
	oldest, err := p.storage.Query(ctx, &report.Query{SortOrder: "asc", Limit: excess})
	if err != nil {
		return 0, fmt.Errorf("failed to query reports: %w", err)
	}
	if len(oldest) == 0 {
		return 0, nil
	}

	p.logger.Info("report count exceeds limit, pruning oldest",
		"current_count", count,
		"max_reports", p.config.MaxReports,
		"to_delete", excess,
	)

	// Reports sharing the cutoff timestamp are deleted together.
	cutoff := oldest[len(oldest)-1].StartedAt
	deleted, err := p.storage.Delete(ctx, &report.Query{EndTime: &cutoff})
	if err != nil {
		return 0, fmt.Errorf("delete failed: %w", err)
	}
	return deleted, nil
}

// Start starts scheduled pruning.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops scheduled pruning.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}

package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/stencil/pkg/config"
	"mercator-hq/stencil/pkg/history"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain records.
	// 0 keeps records forever.
	RetentionDays int

	// MaxRecords is the maximum number of records to keep.
	// 0 means unlimited.
	MaxRecords int64

	// PruneSchedule is a cron expression, e.g. "0 3 * * *".
	// Empty disables scheduled pruning.
	PruneSchedule string
}

// FromConfig converts the history retention section.
func FromConfig(rc config.RetentionConfig) *Config {
	return &Config{
		RetentionDays: rc.Days,
		MaxRecords:    rc.MaxRecords,
		PruneSchedule: rc.Schedule,
	}
}

// Pruner enforces retention on a history store.
type Pruner struct {
	storage   history.Storage
	config    *Config
	logger    *slog.Logger
	scheduler *Scheduler
	now       func() time.Time

	// OnPruned, if set, is called with the number of records each
	// successful Prune removed.
	OnPruned func(n int64)
}

// NewPruner creates a new retention pruner.
func NewPruner(storage history.Storage, cfg *Config) *Pruner {
	if cfg == nil {
		cfg = FromConfig(config.Default().History.Retention)
	}

	p := &Pruner{
		storage: storage,
		config:  cfg,
		logger:  slog.Default().With("component", "history.retention"),
		now:     time.Now,
	}
	p.scheduler = NewScheduler(p)
	return p
}

// Prune deletes records older than the retention period, then the oldest
// records beyond MaxRecords. It returns the total number deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.RetentionDays > 0 {
		cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)
		deleted, err := p.storage.DeleteBefore(ctx, cutoff)
		if err != nil {
			return total, fmt.Errorf("prune by age failed: %w", err)
		}
		total += deleted
		p.logger.Debug("pruned records by age",
			"deleted_count", deleted,
			"cutoff_time", cutoff,
		)
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.storage.Trim(ctx, p.config.MaxRecords)
		if err != nil {
			return total, fmt.Errorf("prune by count failed: %w", err)
		}
		total += deleted
		p.logger.Debug("pruned records by count",
			"deleted_count", deleted,
			"max_records", p.config.MaxRecords,
		)
	}

	if total > 0 {
		p.logger.Info("history pruning completed",
			"total_deleted", total,
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	}
	if p.OnPruned != nil {
		p.OnPruned(total)
	}
	return total, nil
}

// Start starts the pruning scheduler.
func (p *Pruner) Start(ctx context.Context) error {
	return p.scheduler.Start(ctx)
}

// Stop stops the pruning scheduler.
func (p *Pruner) Stop() {
	p.scheduler.Stop()
}

// NextPruning returns the time of the next scheduled pruning, or nil.
func (p *Pruner) NextPruning() *time.Time {
	return p.scheduler.NextRun()
}

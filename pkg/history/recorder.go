package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mercator-hq/stencil/pkg/lint"
)

// Recorder turns lint results into stored records.
type Recorder struct {
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
}

// NewRecorder creates a Recorder writing to storage.
func NewRecorder(storage Storage) *Recorder {
	return &Recorder{
		storage: storage,
		logger:  slog.Default().With("component", "history.recorder"),
		now:     time.Now,
	}
}

// FromResult builds a record for r, stamped at recordedAt.
func FromResult(r lint.Result, recordedAt time.Time) *Record {
	rec := &Record{
		ID:          uuid.New().String(),
		Source:      r.File,
		ContentHash: r.ContentHash,
		Valid:       r.Valid,
		Bytes:       r.Bytes,
		Nodes:       r.Nodes,
		Depth:       r.Depth,
		Duration:    r.Duration,
		RecordedAt:  recordedAt.UTC(),
	}
	if issue := r.FirstError(); issue != nil {
		rec.ErrorKind = issue.Kind
		rec.ErrorOffset = issue.Offset
		rec.Message = issue.Message
	}
	return rec
}

// RecordResults stores one record per result. It stops at the first
// storage error.
func (rc *Recorder) RecordResults(ctx context.Context, results []lint.Result) error {
	now := rc.now()
	for _, r := range results {
		rec := FromResult(r, now)
		if err := rc.storage.Store(ctx, rec); err != nil {
			rc.logger.Error("failed to record lint result", "source", r.File, "error", err)
			return err
		}
	}
	rc.logger.Debug("recorded lint results", "count", len(results))
	return nil
}

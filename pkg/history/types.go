package history

import (
	"context"
	"time"
)

// Record is one persisted lint result.
type Record struct {
	ID          string        `json:"id"`
	Source      string        `json:"source"`
	ContentHash string        `json:"content_hash"`
	Valid       bool          `json:"valid"`
	ErrorKind   string        `json:"error_kind,omitempty"`
	ErrorOffset int           `json:"error_offset,omitempty"`
	Message     string        `json:"message,omitempty"`
	Bytes       int           `json:"bytes"`
	Nodes       int           `json:"nodes"`
	Depth       int           `json:"depth"`
	Duration    time.Duration `json:"duration_ns"`
	RecordedAt  time.Time     `json:"recorded_at"`
}

// Query filters records. Zero fields match everything.
type Query struct {
	// Source matches the template path exactly.
	Source string

	// Valid restricts results to passing (true) or failing (false) lints.
	Valid *bool

	// Since and Until bound RecordedAt, inclusive and exclusive.
	Since *time.Time
	Until *time.Time

	// Limit caps the number of records returned. 0 means no limit.
	Limit int
}

// Matches reports whether r satisfies every filter in q except Limit.
func (q *Query) Matches(r *Record) bool {
	if q == nil {
		return true
	}
	if q.Source != "" && r.Source != q.Source {
		return false
	}
	if q.Valid != nil && r.Valid != *q.Valid {
		return false
	}
	if q.Since != nil && r.RecordedAt.Before(*q.Since) {
		return false
	}
	if q.Until != nil && !r.RecordedAt.Before(*q.Until) {
		return false
	}
	return true
}

// Storage persists records. Query returns records newest first.
// Implementations must be safe for concurrent use.
type Storage interface {
	Store(ctx context.Context, record *Record) error
	Query(ctx context.Context, query *Query) ([]*Record, error)
	Count(ctx context.Context, query *Query) (int64, error)

	// DeleteBefore removes records recorded before cutoff.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Trim removes the oldest records so that at most keep remain.
	Trim(ctx context.Context, keep int64) (int64, error)

	Close() error
}

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteStorage implements Storage on SQLite.
type SQLiteStorage struct {
	db        *sql.DB
	path      string
	logger    *slog.Logger
	closeOnce sync.Once
}

// NewSQLiteStorage opens or creates the database at cfg.Path and applies
// the schema.
func NewSQLiteStorage(cfg SQLiteConfig) (*SQLiteStorage, error) {
	if cfg.Path == "" {
		return nil, NewStorageError("sqlite", "open", errors.New("db path cannot be empty"))
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	// modernc.org/sqlite applies repeated _pragma parameters on every connection.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(%d)",
		cfg.Path, cfg.BusyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStorage{
		db:     db,
		path:   cfg.Path,
		logger: slog.Default().With("component", "history.sqlite"),
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	s.logger.Debug("SQLite history initialized", "path", cfg.Path)
	return s, nil
}

func (s *SQLiteStorage) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version sql.NullInt64
	if err := s.db.QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version.Int64 != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version.Int64))
	}
	return nil
}

func (s *SQLiteStorage) Store(ctx context.Context, r *Record) error {
	var kind, msg any
	var offset any
	if !r.Valid {
		kind, msg, offset = r.ErrorKind, r.Message, r.ErrorOffset
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lint_history (
			id, source, content_hash, valid,
			error_kind, error_offset, message,
			bytes, nodes, depth, duration_ns, recorded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Source, r.ContentHash, r.Valid,
		kind, offset, msg,
		r.Bytes, r.Nodes, r.Depth, int64(r.Duration), r.RecordedAt.UnixNano(),
	)
	if err != nil {
		return NewStorageError("sqlite", "store", err)
	}
	return nil
}

// buildWhere renders the filters of q as a WHERE clause and its arguments.
func buildWhere(q *Query) (string, []any) {
	if q == nil {
		return "", nil
	}

	var conds []string
	var args []any
	if q.Source != "" {
		conds = append(conds, "source = ?")
		args = append(args, q.Source)
	}
	if q.Valid != nil {
		conds = append(conds, "valid = ?")
		args = append(args, *q.Valid)
	}
	if q.Since != nil {
		conds = append(conds, "recorded_at >= ?")
		args = append(args, q.Since.UnixNano())
	}
	if q.Until != nil {
		conds = append(conds, "recorded_at < ?")
		args = append(args, q.Until.UnixNano())
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *SQLiteStorage) Query(ctx context.Context, q *Query) ([]*Record, error) {
	where, args := buildWhere(q)
	stmt := `SELECT id, source, content_hash, valid, error_kind, error_offset, message,
		bytes, nodes, depth, duration_ns, recorded_at
		FROM lint_history` + where + ` ORDER BY recorded_at DESC, rowid DESC`
	if q != nil && q.Limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		var (
			r          Record
			kind, msg  sql.NullString
			offset     sql.NullInt64
			durationNs int64
			recordedNs int64
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.ContentHash, &r.Valid, &kind, &offset, &msg,
			&r.Bytes, &r.Nodes, &r.Depth, &durationNs, &recordedNs); err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		r.ErrorKind = kind.String
		r.ErrorOffset = int(offset.Int64)
		r.Message = msg.String
		r.Duration = time.Duration(durationNs)
		r.RecordedAt = time.Unix(0, recordedNs).UTC()
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	return out, nil
}

func (s *SQLiteStorage) Count(ctx context.Context, q *Query) (int64, error) {
	where, args := buildWhere(q)
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lint_history"+where, args...).Scan(&n); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return n, nil
}

func (s *SQLiteStorage) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lint_history WHERE recorded_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStorage) Trim(ctx context.Context, keep int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM lint_history WHERE rowid NOT IN (
			SELECT rowid FROM lint_history ORDER BY recorded_at DESC, rowid DESC LIMIT ?
		)`, max(keep, 0))
	if err != nil {
		return 0, NewStorageError("sqlite", "trim", err)
	}
	return res.RowsAffected()
}

// Close closes the database. It is safe to call more than once.
func (s *SQLiteStorage) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.db.Close()
	})
	return err
}

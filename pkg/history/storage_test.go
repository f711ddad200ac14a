package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/stencil/pkg/config"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func backends(t *testing.T) map[string]func(t *testing.T) Storage {
	return map[string]func(t *testing.T) Storage{
		"memory": func(t *testing.T) Storage { return NewMemoryStorage() },
		"sqlite": func(t *testing.T) Storage {
			s, err := NewSQLiteStorage(SQLiteConfig{Path: filepath.Join(t.TempDir(), "history.db")})
			if err != nil {
				t.Fatalf("NewSQLiteStorage() error = %v", err)
			}
			return s
		},
	}
}

func sampleRecords() []*Record {
	return []*Record{
		{ID: "r1", Source: "a.tmpl", ContentHash: "h1", Valid: true, Bytes: 5, Nodes: 3, Depth: 1, Duration: time.Millisecond, RecordedAt: base},
		{ID: "r2", Source: "b.tmpl", ContentHash: "h2", Valid: false, ErrorKind: "unterminated_delimiter", ErrorOffset: 4, Message: "variable opened here is never closed", Bytes: 7, Nodes: 4, RecordedAt: base.Add(time.Hour)},
		{ID: "r3", Source: "a.tmpl", ContentHash: "h3", Valid: true, Bytes: 9, Nodes: 5, Depth: 2, RecordedAt: base.Add(2 * time.Hour)},
		{ID: "r4", Source: "c.tmpl", ContentHash: "h4", Valid: false, ErrorKind: "invalid_identifier", ErrorOffset: 4, Message: "expected identifier", Bytes: 8, Nodes: 3, RecordedAt: base.Add(3 * time.Hour)},
	}
}

func seed(t *testing.T, s Storage) {
	t.Helper()
	// Stored out of order; every backend returns newest first.
	for _, i := range []int{2, 0, 3, 1} {
		if err := s.Store(context.Background(), sampleRecords()[i]); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
	}
}

func ids(records []*Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestStorage_Query(t *testing.T) {
	valid, invalid := true, false
	since := base.Add(time.Hour)
	until := base.Add(3 * time.Hour)

	tests := []struct {
		name  string
		query *Query
		want  []string
	}{
		{name: "nil query", query: nil, want: []string{"r4", "r3", "r2", "r1"}},
		{name: "by source", query: &Query{Source: "a.tmpl"}, want: []string{"r3", "r1"}},
		{name: "failed only", query: &Query{Valid: &invalid}, want: []string{"r4", "r2"}},
		{name: "valid only", query: &Query{Valid: &valid}, want: []string{"r3", "r1"}},
		{name: "time window", query: &Query{Since: &since, Until: &until}, want: []string{"r3", "r2"}},
		{name: "limit", query: &Query{Limit: 2}, want: []string{"r4", "r3"}},
		{name: "no match", query: &Query{Source: "zzz"}, want: []string{}},
	}

	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()
			seed(t, s)

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					got, err := s.Query(context.Background(), tt.query)
					if err != nil {
						t.Fatalf("Query() error = %v", err)
					}
					if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
						t.Errorf("Query() mismatch (-want +got):\n%s", diff)
					}

					n, err := s.Count(context.Background(), &Query{Source: "a.tmpl"})
					if err != nil || n != 2 {
						t.Errorf("Count() = %d, %v; want 2", n, err)
					}
				})
			}
		})
	}
}

func TestStorage_RoundTrip(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()
			seed(t, s)

			got, err := s.Query(context.Background(), &Query{Source: "b.tmpl"})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if diff := cmp.Diff([]*Record{sampleRecords()[1]}, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStorage_DeleteAndTrim(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer s.Close()
			seed(t, s)

			deleted, err := s.DeleteBefore(ctx, base.Add(time.Hour))
			if err != nil || deleted != 1 {
				t.Fatalf("DeleteBefore() = %d, %v; want 1", deleted, err)
			}

			trimmed, err := s.Trim(ctx, 2)
			if err != nil || trimmed != 1 {
				t.Fatalf("Trim() = %d, %v; want 1", trimmed, err)
			}

			got, _ := s.Query(ctx, nil)
			if diff := cmp.Diff([]string{"r4", "r3"}, ids(got)); diff != "" {
				t.Errorf("remaining mismatch (-want +got):\n%s", diff)
			}

			if n, _ := s.Trim(ctx, 10); n != 0 {
				t.Errorf("Trim() above size deleted %d, want 0", n)
			}
		})
	}
}

func TestMemoryStorage_Closed(t *testing.T) {
	s := NewMemoryStorage()
	s.Close()

	err := s.Store(context.Background(), sampleRecords()[0])
	var serr *StorageError
	if !errors.As(err, &serr) || !errors.Is(err, ErrClosed) {
		t.Errorf("Store() after Close error = %v, want StorageError wrapping ErrClosed", err)
	}
	if serr != nil && serr.Backend != "memory" {
		t.Errorf("Backend = %q, want memory", serr.Backend)
	}
}

func TestSQLiteStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewSQLiteStorage(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	seed(t, s)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	s, err = NewSQLiteStorage(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()
	if n, _ := s.Count(context.Background(), nil); n != 4 {
		t.Errorf("Count() after reopen = %d, want 4", n)
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage(SQLiteConfig{}); err == nil {
		t.Error("NewSQLiteStorage() with empty path succeeded")
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.HistoryConfig
		want    string
		wantErr bool
	}{
		{name: "memory", cfg: config.HistoryConfig{Backend: "memory"}, want: "*history.MemoryStorage"},
		{name: "sqlite creates directory", cfg: config.HistoryConfig{Backend: "sqlite", Path: filepath.Join(t.TempDir(), "nested", "h.db")}, want: "*history.SQLiteStorage"},
		{name: "unknown", cfg: config.HistoryConfig{Backend: "postgres"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer s.Close()
			if got := typeName(s); got != tt.want {
				t.Errorf("Open() = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *MemoryStorage:
		return "*history.MemoryStorage"
	case *SQLiteStorage:
		return "*history.SQLiteStorage"
	}
	return "unknown"
}

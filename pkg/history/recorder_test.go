package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"mercator-hq/stencil/pkg/lint"
)

func TestRecorder_RecordResults(t *testing.T) {
	store := NewMemoryStorage()
	rec := NewRecorder(store)
	rec.now = func() time.Time { return base }

	results := []lint.Result{
		{File: "ok.tmpl", Valid: true, Bytes: 5, ContentHash: "aa", Nodes: 3, Depth: 1, Duration: time.Millisecond},
		{File: "bad.tmpl", Bytes: 7, ContentHash: "bb", Errors: []lint.Issue{
			{Kind: "unterminated_delimiter", Offset: 4, Message: "variable opened here is never closed"},
			{Kind: "ignored", Offset: 9},
		}},
	}
	if err := rec.RecordResults(context.Background(), results); err != nil {
		t.Fatalf("RecordResults() error = %v", err)
	}

	got, err := store.Query(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	want := []*Record{
		{Source: "bad.tmpl", ContentHash: "bb", Bytes: 7, ErrorKind: "unterminated_delimiter", ErrorOffset: 4, Message: "variable opened here is never closed", RecordedAt: base},
		{Source: "ok.tmpl", ContentHash: "aa", Valid: true, Bytes: 5, Nodes: 3, Depth: 1, Duration: time.Millisecond, RecordedAt: base},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Record{}, "ID")); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Errorf("IDs = %q, %q; want distinct non-empty", got[0].ID, got[1].ID)
	}
}

func TestRecorder_StorageError(t *testing.T) {
	store := NewMemoryStorage()
	store.Close()

	err := NewRecorder(store).RecordResults(context.Background(), []lint.Result{{File: "x.tmpl"}})
	if err == nil {
		t.Error("RecordResults() on closed store succeeded")
	}
}

// Package history persists lint results.
//
// Each linted file becomes a Record holding its path, a SHA-256 of its
// content, the outcome and, for failures, the error kind and offset.
// Records are kept in a Storage backend: an in-memory store for tests and
// one-shot runs, or SQLite (modernc.org/sqlite, no cgo) for a durable log.
//
//	store, err := history.Open(cfg.History)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	rec := history.NewRecorder(store)
//	err = rec.RecordResults(ctx, results)
//
// Old records are removed by the retention subpackage.
package history

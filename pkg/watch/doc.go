// Package watch re-lints templates when they change on disk.
//
// A Watcher registers fsnotify watches on files and directory trees. Events
// for matching template files are collected while a Debouncer waits for a
// quiet period, then delivered as one batch of changed paths. Run combines a
// Watcher with a lint.Linter: it lints everything once and then re-lints
// each batch.
package watch

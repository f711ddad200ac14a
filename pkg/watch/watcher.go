package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/stencil/pkg/config"
)

// ErrAlreadyRunning is returned when Watch is called twice.
var ErrAlreadyRunning = errors.New("watcher already running")

// Config contains configuration for the file watcher.
type Config struct {
	// Paths are the files and directory trees to watch.
	Paths []string

	// Debounce is the quiet period before a batch is delivered.
	Debounce time.Duration

	// Extensions selects template files, e.g. ".tmpl".
	Extensions []string

	// SkipHidden ignores dot-prefixed files and directories.
	SkipHidden bool
}

// FromConfig builds a watcher Config from the watch and lint sections.
func FromConfig(paths []string, wc config.WatchConfig, lc config.LintConfig) *Config {
	cfg := &Config{
		Paths:      paths,
		Debounce:   wc.Debounce,
		Extensions: lc.Extensions,
		SkipHidden: wc.SkipHidden,
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = config.DefaultWatchDebounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = config.DefaultLintExtensions
	}
	return cfg
}

// Watcher delivers batches of changed template paths.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	mu        sync.Mutex
	running   bool
	pending   map[string]bool
	ready     chan struct{}
	readyOnce sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
	stop      sync.Once
}

// New creates a Watcher. No watches are registered until Watch runs.
func New(cfg *Config, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil || len(cfg.Paths) == 0 {
		return nil, errors.New("watch: no paths configured")
	}
	if logger == nil {
		logger = slog.Default().With("component", "watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		logger:   logger,
		config:   cfg,
		debounce: NewDebouncer(cfg.Debounce),
		pending:  make(map[string]bool),
		ready:    make(chan struct{}),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Ready is closed once every configured path is being watched, or once
// Watch has returned without getting that far.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Watch registers the configured paths and blocks until ctx is cancelled or
// Stop is called. onChange receives each debounced batch of paths, sorted.
// It runs on the debouncer's goroutine, one batch at a time.
func (w *Watcher) Watch(ctx context.Context, onChange func(paths []string)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyRunning
	}
	w.running = true
	w.mu.Unlock()

	defer close(w.doneCh)
	defer w.markReady()

	for _, p := range w.config.Paths {
		if err := w.addPath(p); err != nil {
			return fmt.Errorf("failed to watch %q: %w", p, err)
		}
	}
	w.markReady()

	w.logger.Info("watching templates",
		"paths", w.config.Paths,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	var deliver sync.Mutex
	flush := func() {
		deliver.Lock()
		defer deliver.Unlock()
		if batch := w.drain(); len(batch) > 0 {
			onChange(batch)
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped", "reason", ctx.Err())
			return nil

		case <-w.stopCh:
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if w.handleCreateDir(event) {
				continue
			}
			if !w.shouldProcess(event) {
				continue
			}

			w.logger.Debug("template changed", "path", event.Name, "op", event.Op.String())
			w.mu.Lock()
			w.pending[event.Name] = true
			w.mu.Unlock()
			w.debounce.Trigger(flush)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop ends Watch, cancels any pending batch and releases the fsnotify
// watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stop.Do(func() {
		close(w.stopCh)

		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if running {
			<-w.doneCh
		}

		w.debounce.Stop()
		if cerr := w.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
	})
	return err
}

func (w *Watcher) drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	batch := make([]string, 0, len(w.pending))
	for p := range w.pending {
		batch = append(batch, p)
	}
	clear(w.pending)
	sort.Strings(batch)
	return batch
}

func (w *Watcher) markReady() {
	w.readyOnce.Do(func() { close(w.ready) })
}

// addPath watches a file, or a directory and all its subdirectories.
func (w *Watcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && w.hidden(p) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", p, err)
		}
		w.logger.Debug("watching directory", "path", p)
		return nil
	})
}

// handleCreateDir starts watching a newly created directory. It reports
// whether the event was consumed.
func (w *Watcher) handleCreateDir(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	if !w.hidden(event.Name) {
		if err := w.addPath(event.Name); err != nil {
			w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
		}
	}
	return true
}

func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.hidden(event.Name) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return slices.ContainsFunc(w.config.Extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

func (w *Watcher) hidden(path string) bool {
	return w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}

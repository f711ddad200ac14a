package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"mercator-hq/stencil/pkg/lint"
)

// Report receives the results of one lint pass.
type Report func(results []lint.Result)

// Run lints every template under the watcher's paths once, then re-lints
// each batch of changed files until ctx is cancelled. Deleted files are
// dropped from a batch. Run stops the watcher before returning.
func Run(ctx context.Context, w *Watcher, l *lint.Linter, report Report) error {
	defer w.Stop()

	results, err := l.LintPaths(ctx, w.config.Paths)
	switch {
	case errors.Is(err, lint.ErrNoTemplates):
		w.logger.Warn("no templates found yet", "paths", w.config.Paths)
	case err != nil:
		return err
	default:
		report(results)
	}

	return w.Watch(ctx, func(paths []string) {
		var batch []lint.Result
		for _, p := range paths {
			if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
				w.logger.Debug("template removed", "path", p)
				continue
			}
			batch = append(batch, l.LintFile(ctx, p))
		}
		if len(batch) > 0 {
			report(batch)
		}
	})
}

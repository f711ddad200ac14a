package lint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"mercator-hq/stencil/pkg/config"
	"mercator-hq/stencil/pkg/telemetry/logging"
	"mercator-hq/stencil/pkg/telemetry/tracing"
	"mercator-hq/stencil/pkg/tmpl"
	"mercator-hq/stencil/pkg/tmpl/ast"
	"mercator-hq/stencil/pkg/tmpl/diag"
	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"
	"mercator-hq/stencil/pkg/tmpl/parser"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// LintSpanName is the name of the span wrapping a LintPaths call.
const LintSpanName = "stencil.lint"

// ErrNoTemplates is returned by LintPaths when no path names a template.
var ErrNoTemplates = errors.New("no template files found")

// SinkFactory builds a diagnostics sink for one file. ctx carries the
// parse ID and source path of that file.
type SinkFactory func(ctx context.Context) diag.Sink

// Linter lints template files. It is safe for concurrent use.
type Linter struct {
	parser       *parser.Parser
	extensions   []string
	maxFileSize  int64
	contextLines int
	skipHidden   bool

	sinkFor  SinkFactory
	tracer   *tracing.Tracer
	logger   *slog.Logger
	progress func(done, total int)
}

// Option configures a Linter.
type Option func(*Linter)

// WithSinkFactory attaches a per-file diagnostics sink.
func WithSinkFactory(f SinkFactory) Option {
	return func(l *Linter) { l.sinkFor = f }
}

// WithTracer runs each lint pass and parse under a span.
func WithTracer(t *tracing.Tracer) Option {
	return func(l *Linter) { l.tracer = t }
}

// WithLogger sets the logger for directory walking.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) { l.logger = logger }
}

// WithProgress registers a callback invoked by LintPaths with done=0 before
// the first file and after every file.
func WithProgress(fn func(done, total int)) Option {
	return func(l *Linter) { l.progress = fn }
}

// WithSkipHidden controls whether directory walks skip dot-prefixed entries.
func WithSkipHidden(skip bool) Option {
	return func(l *Linter) { l.skipHidden = skip }
}

// New creates a Linter that parses with p. Zero values in cfg fall back to
// the config defaults.
func New(p *parser.Parser, cfg config.LintConfig, opts ...Option) *Linter {
	if p == nil {
		p = parser.NewParser()
	}

	l := &Linter{
		parser:       p,
		extensions:   normalizeExtensions(cfg.Extensions),
		maxFileSize:  cfg.MaxFileSize,
		contextLines: cfg.ContextLines,
		skipHidden:   true,
		logger:       slog.Default().With("component", "lint"),
	}
	if len(l.extensions) == 0 {
		l.extensions = normalizeExtensions(config.DefaultLintExtensions)
	}
	if l.maxFileSize <= 0 {
		l.maxFileSize = config.DefaultLintMaxFileSize
	}
	if l.contextLines < 0 {
		l.contextLines = 0
	}

	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Matches reports whether path has a template extension.
func (l *Linter) Matches(path string) bool {
	return slices.Contains(l.extensions, strings.ToLower(filepath.Ext(path)))
}

// LintFile reads and lints a single file. Read failures produce an invalid
// Result with an "io" issue rather than an error.
func (l *Linter) LintFile(ctx context.Context, path string) Result {
	start := time.Now()

	source, err := tmpl.ReadFile(path, l.maxFileSize)
	if err != nil {
		return Result{
			File:     path,
			Errors:   []Issue{{Kind: IssueIO, Message: err.Error()}},
			Duration: time.Since(start),
		}
	}

	r := l.LintSource(ctx, path, source)
	r.Duration = time.Since(start)
	return r
}

// LintSource lints template text that did not come from disk. name labels
// the Result and the diagnostics.
func (l *Linter) LintSource(ctx context.Context, name, source string) Result {
	start := time.Now()

	ctx = logging.WithParseID(ctx, logging.NewParseID())
	ctx = logging.WithSource(ctx, name)

	p := l.parser
	if l.sinkFor != nil {
		p = p.WithSink(diag.Multi(p.Sink(), l.sinkFor(ctx)))
	}

	var (
		doc *ast.Document
		err error
	)
	if l.tracer != nil {
		doc, err = tracing.Parse(ctx, l.tracer, p, name, source)
	} else {
		doc, err = p.Parse(source)
	}

	r := Result{
		File:        name,
		ContentHash: contentHash(source),
		Bytes:       len(source),
	}
	if err != nil {
		r.Errors = []Issue{issueFrom(tmplErrors.WithSource(err, source, l.contextLines))}
	} else {
		r.Valid = true
		r.Nodes = ast.CountNodes(doc)
		r.Depth = ast.MaxDepth(doc)
		for _, v := range doc.Variables() {
			r.Variables = append(r.Variables, v.Path())
		}
	}
	r.Duration = time.Since(start)
	return r
}

// LintPaths lints every template named by paths. Files are linted whether
// or not their extension matches; directories are walked recursively for
// matching files. Results are in walk order. Linting stops early if ctx is
// cancelled.
func (l *Linter) LintPaths(ctx context.Context, paths []string) ([]Result, error) {
	files, err := l.Collect(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoTemplates
	}

	results := make([]Result, 0, len(files))

	if l.tracer != nil {
		var span trace.Span
		ctx, span = l.tracer.Start(ctx, LintSpanName,
			trace.WithAttributes(attribute.Int(tracing.AttrLintFiles, len(files))))
		if id := tracing.TraceID(ctx); id != "" {
			ctx = logging.WithTraceID(ctx, id)
		}
		defer func() {
			span.SetAttributes(attribute.Int(tracing.AttrLintInvalid, Summarize(results).Invalid))
			span.End()
		}()
	}

	l.reportProgress(0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, l.LintFile(ctx, f))
		l.reportProgress(len(results), len(files))
	}
	return results, nil
}

// Collect expands paths into the list of files LintPaths would lint.
func (l *Linter) Collect(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to access %q: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && l.skipHidden && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() && l.Matches(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", root, err)
		}
	}

	l.logger.Debug("collected templates", "paths", len(paths), "files", len(files))
	return files, nil
}

func (l *Linter) reportProgress(done, total int) {
	if l.progress != nil {
		l.progress(done, total)
	}
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func contentHash(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

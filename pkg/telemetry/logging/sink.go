package logging

import (
	"context"
	"errors"
	"log/slog"

	"mercator-hq/stencil/pkg/tmpl/diag"
	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"
)

// Sink writes parse events to a Logger. Structural events are logged at
// debug; the outcome of a parse at debug on success and info on failure.
type Sink struct {
	logger *Logger
	ctx    context.Context
}

// NewSink adapts logger to diag.Sink. Context fields from ctx are attached
// to every line.
func NewSink(ctx context.Context, logger *Logger) *Sink {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Sink{logger: logger.WithContext(ctx), ctx: ctx}
}

// Record implements diag.Sink.
func (s *Sink) Record(e diag.Event) {
	switch e.Kind {
	case diag.EventParseFailed:
		args := []any{
			"kind", tmplErrors.KindOf(e.Err),
			"offset", e.Offset,
			"nodes", e.Nodes,
			"elapsed", e.Elapsed,
		}
		var perr *tmplErrors.Error
		if errors.As(e.Err, &perr) && perr.Limit > 0 {
			args = append(args, "limit", perr.Limit)
		}
		s.logger.log(s.ctx, slog.LevelInfo, "parse failed", args...)

	case diag.EventParseFinished:
		s.logger.log(s.ctx, slog.LevelDebug, "parse finished",
			"nodes", e.Nodes, "bytes", e.Offset, "elapsed", e.Elapsed)

	case diag.EventParseStarted:
		s.logger.log(s.ctx, slog.LevelDebug, "parse started", "bytes", e.InputLen)

	case diag.EventNestingEntered, diag.EventNestingExited:
		s.logger.log(s.ctx, slog.LevelDebug, string(e.Kind), "depth", e.Depth, "offset", e.Offset)

	case diag.EventNodeEmitted:
		s.logger.log(s.ctx, slog.LevelDebug, string(e.Kind), "node", string(e.Node), "offset", e.Offset, "nodes", e.Nodes)
	}
}

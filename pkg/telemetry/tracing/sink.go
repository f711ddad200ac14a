package tracing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/stencil/pkg/tmpl/ast"
	"mercator-hq/stencil/pkg/tmpl/diag"
	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"
	"mercator-hq/stencil/pkg/tmpl/parser"
)

// SpanName is the name of the span created for each parse.
const SpanName = "stencil.parse"

// SpanSink records parse events on a single span. Nesting and node events
// only raise the running maxima; the outcome sets attributes and status.
// A SpanSink belongs to one parse and is not safe for concurrent use.
type SpanSink struct {
	span     trace.Span
	maxDepth int
}

// NewSpanSink adapts span to diag.Sink.
func NewSpanSink(span trace.Span) *SpanSink {
	return &SpanSink{span: span}
}

// Record implements diag.Sink.
func (s *SpanSink) Record(e diag.Event) {
	switch e.Kind {
	case diag.EventNestingEntered:
		if e.Depth > s.maxDepth {
			s.maxDepth = e.Depth
		}

	case diag.EventParseStarted:
		s.span.SetAttributes(attribute.Int(AttrBytes, e.InputLen))

	case diag.EventParseFinished:
		s.span.SetAttributes(
			attribute.Int(AttrNodes, e.Nodes),
			attribute.Int(AttrDepth, s.maxDepth),
		)
		Finish(s.span, nil)

	case diag.EventParseFailed:
		attrs := []attribute.KeyValue{
			attribute.String(AttrErrorKind, string(tmplErrors.KindOf(e.Err))),
			attribute.Int(AttrErrorOffset, e.Offset),
			attribute.Int(AttrNodes, e.Nodes),
			attribute.Int(AttrDepth, s.maxDepth),
		}
		var perr *tmplErrors.Error
		if errors.As(e.Err, &perr) && perr.Limit > 0 {
			attrs = append(attrs, attribute.Int(AttrErrorLimit, perr.Limit))
		}
		s.span.SetAttributes(attrs...)
		Finish(s.span, e.Err)
	}
}

// MaxDepth returns the deepest nesting seen so far.
func (s *SpanSink) MaxDepth() int {
	return s.maxDepth
}

// Parse parses input under a new span named SpanName. Any sink already
// attached to p keeps receiving events alongside the span.
func Parse(ctx context.Context, t *Tracer, p *parser.Parser, source, input string) (*ast.Document, error) {
	_, span := t.Start(ctx, SpanName,
		NewAttributeBuilder().WithSource(source).WithLimits(p.Config()).Build())
	defer span.End()

	if !span.IsRecording() {
		return p.Parse(input)
	}
	return p.WithSink(diag.Multi(p.Sink(), NewSpanSink(span))).Parse(input)
}

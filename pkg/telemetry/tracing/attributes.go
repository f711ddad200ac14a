package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mercator-hq/stencil/pkg/tmpl/ast"
	"mercator-hq/stencil/pkg/tmpl/parser"
)

// Span attribute keys. Stencil-specific keys live under "stencil.*".
const (
	AttrSource   = "stencil.source"
	AttrBytes    = "stencil.bytes"
	AttrNodes    = "stencil.nodes"
	AttrDepth    = "stencil.depth"
	AttrMaxDepth = "stencil.limit.max_depth"
	AttrMaxNodes = "stencil.limit.max_nodes"

	AttrErrorKind   = "stencil.error.kind"
	AttrErrorOffset = "stencil.error.offset"
	AttrErrorLimit  = "stencil.error.limit"
	AttrErrorMsg    = "error.message"

	AttrLintFiles   = "stencil.lint.files"
	AttrLintInvalid = "stencil.lint.invalid"
)

// SetLimitAttributes records the parser limits on span.
func SetLimitAttributes(span trace.Span, cfg parser.Config) {
	span.SetAttributes(
		attribute.Int(AttrMaxDepth, cfg.MaxDepth),
		attribute.Int(AttrMaxNodes, cfg.MaxNodes),
	)
}

// SetDocumentAttributes records the shape of a parsed document.
func SetDocumentAttributes(span trace.Span, doc *ast.Document) {
	if doc == nil {
		return
	}
	span.SetAttributes(
		attribute.Int(AttrNodes, ast.CountNodes(doc)),
		attribute.Int(AttrDepth, ast.MaxDepth(doc)),
	)
}

// AddEvent adds an event with optional attributes to span.
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// AttributeBuilder collects span attributes fluently.
//
//	attrs := NewAttributeBuilder().
//		WithSource("page.tmpl").
//		WithBytes(len(input)).
//		Build()
//	ctx, span := tracer.Start(ctx, "stencil.parse", attrs)
type AttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewAttributeBuilder creates an empty builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{}
}

// WithSource sets the template path or name.
func (ab *AttributeBuilder) WithSource(source string) *AttributeBuilder {
	if source != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrSource, source))
	}
	return ab
}

// WithBytes sets the input size.
func (ab *AttributeBuilder) WithBytes(n int) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.Int(AttrBytes, n))
	return ab
}

// WithLimits sets the parser limits.
func (ab *AttributeBuilder) WithLimits(cfg parser.Config) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.Int(AttrMaxDepth, cfg.MaxDepth),
		attribute.Int(AttrMaxNodes, cfg.MaxNodes),
	)
	return ab
}

// Build returns the attributes as a span start option.
func (ab *AttributeBuilder) Build() trace.SpanStartOption {
	return trace.WithAttributes(ab.attrs...)
}

// Attributes returns the collected attributes.
func (ab *AttributeBuilder) Attributes() []attribute.KeyValue {
	return ab.attrs
}

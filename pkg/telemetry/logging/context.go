package logging

import (
	"context"

	"github.com/google/uuid"
)

// Context keys for common log fields.
type contextKey string

const (
	// ParseIDKey is the context key for the identifier of one parse or lint run.
	ParseIDKey contextKey = "parse_id"

	// SourceKey is the context key for the template source (file path or "-").
	SourceKey contextKey = "source"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"
)

// NewParseID returns a fresh random parse identifier.
func NewParseID() string {
	return uuid.NewString()
}

// WithParseID adds a parse ID to the context.
func WithParseID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ParseIDKey, id)
}

// GetParseID retrieves the parse ID from the context.
func GetParseID(ctx context.Context) string {
	if id, ok := ctx.Value(ParseIDKey).(string); ok {
		return id
	}
	return ""
}

// WithSource adds the template source to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the template source from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// extractContextFields returns the context fields as key-value pairs
// suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if id := GetParseID(ctx); id != "" {
		fields = append(fields, "parse_id", id)
	}
	if source := GetSource(ctx); source != "" {
		fields = append(fields, "source", source)
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, "trace_id", traceID)
	}

	return fields
}

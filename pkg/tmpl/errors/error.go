package errors

import (
	"errors"
	"fmt"
	"strings"

	"mercator-hq/stencil/pkg/tmpl/ast"
)

// Kind categorizes a parse failure.
type Kind string

const (
	KindUnterminatedDelimiter Kind = "unterminated_delimiter" // input ended inside an open "{{"
	KindInvalidIdentifier     Kind = "invalid_identifier"     // path segment with no identifier characters
	KindDepthExceeded         Kind = "depth_exceeded"         // nesting deeper than max_depth
	KindNodeCountExceeded     Kind = "node_count_exceeded"    // more than max_nodes nodes
	KindUnexpectedToken       Kind = "unexpected_token"       // structurally invalid sequence
)

// Kinds lists every parse error kind.
var Kinds = []Kind{
	KindUnterminatedDelimiter,
	KindInvalidIdentifier,
	KindDepthExceeded,
	KindNodeCountExceeded,
	KindUnexpectedToken,
}

// Sentinels for errors.Is. An *Error matches a sentinel of the same kind.
var (
	ErrUnterminatedDelimiter = &Error{Kind: KindUnterminatedDelimiter}
	ErrInvalidIdentifier     = &Error{Kind: KindInvalidIdentifier}
	ErrDepthExceeded         = &Error{Kind: KindDepthExceeded}
	ErrNodeCountExceeded     = &Error{Kind: KindNodeCountExceeded}
	ErrUnexpectedToken       = &Error{Kind: KindUnexpectedToken}
)

// Error is a parse failure tagged with the offset of the offending input.
type Error struct {
	Kind       Kind         // Category of error
	Message    string       // Error message
	Offset     int          // Byte offset where the failure was detected
	Position   ast.Position // Line and column of Offset
	Limit      int          // Configured limit for depth/node errors, 0 otherwise
	Context    string       // Source excerpt with a caret (optional)
	Suggestion string       // Suggested fix (optional)
}

// New creates an error of the given kind at pos.
func New(kind Kind, pos ast.Position, format string, args ...any) *Error {
	return &Error{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Offset:     pos.Offset,
		Position:   pos,
		Suggestion: suggestionFor(kind),
	}
}

// NewLimit creates a depth or node-count error carrying the configured limit.
func NewLimit(kind Kind, pos ast.Position, limit int, format string, args ...any) *Error {
	e := New(kind, pos, format, args...)
	e.Limit = limit
	return e
}

// Error implements the error interface.
// The first line is "[kind] message at line:col (offset N)"; context and
// suggestion follow on their own lines when present.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Kind, e.Message))
	if e.Position.IsValid() {
		sb.WriteString(fmt.Sprintf(" at %s (offset %d)", e.Position, e.Offset))
	} else {
		sb.WriteString(fmt.Sprintf(" at offset %d", e.Offset))
	}

	if e.Context != "" {
		sb.WriteString("\n  |\n")
		sb.WriteString(strings.TrimRight(e.Context, "\n"))
		sb.WriteString("\n  |")
	}

	if e.Suggestion != "" && e.Context != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// OffsetOf returns the offset of the first *Error in err's chain, or -1.
func OffsetOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Offset
	}
	return -1
}

// ErrInvalidConfig is wrapped by every ConfigError.
var ErrInvalidConfig = errors.New("invalid parser configuration")

// ConfigError reports a parser configuration rejected at construction time.
type ConfigError struct {
	Field   string
	Value   int
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %d)", ErrInvalidConfig, e.Field, e.Message, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

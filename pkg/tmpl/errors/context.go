package errors

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultContextLines is the number of lines shown on either side of the error line.
const DefaultContextLines = 1

// ExtractContext returns the lines of source around offset with a caret
// under the offending column. It returns "" if offset is out of range.
func ExtractContext(source string, offset int, contextLines int) string {
	if offset < 0 || offset > len(source) {
		return ""
	}

	lines := strings.Split(source, "\n")

	// Locate the line holding offset.
	errorLine, lineStart := 0, 0
	for i, line := range lines {
		if offset <= lineStart+len(line) {
			errorLine = i
			break
		}
		lineStart += len(line) + 1
	}
	column := utf8.RuneCountInString(lines[errorLine][:offset-lineStart])

	startLine := errorLine - contextLines
	endLine := errorLine + contextLines
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, strings.TrimRight(lines[i], "\r")))

		if i == errorLine {
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", width), strings.Repeat(" ", column)))
		}
	}

	return sb.String()
}

// WithSource attaches a source excerpt to err if it is an *Error.
// The original error is not modified; other errors are returned unchanged.
func WithSource(err error, source string, contextLines int) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	withCtx := *e
	withCtx.Context = ExtractContext(source, e.Offset, contextLines)
	return &withCtx
}

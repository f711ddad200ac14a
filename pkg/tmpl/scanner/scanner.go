package scanner

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"mercator-hq/stencil/pkg/tmpl/ast"
	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"
)

const (
	OpenMarker  = "{{"
	CloseMarker = "}}"
	Separator   = '.'
)

// Scanner is a forward-only cursor over template text. It never backtracks;
// callers inspect the current position with the At* methods and consume with
// the Next*/Expect* methods.
//
// A Scanner is owned by a single parse and is not safe for concurrent use.
type Scanner struct {
	input  string
	offset int
	line   int
	column int
}

// New creates a scanner positioned at the start of input.
func New(input string) *Scanner {
	return &Scanner{input: input, line: 1, column: 1}
}

// Input returns the text being scanned.
func (s *Scanner) Input() string { return s.input }

// Offset returns the current byte offset.
func (s *Scanner) Offset() int { return s.offset }

// Pos returns the current position.
func (s *Scanner) Pos() ast.Position {
	return ast.Position{Offset: s.offset, Line: s.line, Column: s.column}
}

// AtEOF reports whether all input has been consumed.
func (s *Scanner) AtEOF() bool { return s.offset >= len(s.input) }

// AtOpen reports whether the cursor is on "{{".
func (s *Scanner) AtOpen() bool { return strings.HasPrefix(s.input[s.offset:], OpenMarker) }

// AtClose reports whether the cursor is on "}}".
func (s *Scanner) AtClose() bool { return strings.HasPrefix(s.input[s.offset:], CloseMarker) }

// AtSeparator reports whether the cursor is on the path separator.
func (s *Scanner) AtSeparator() bool {
	return !s.AtEOF() && s.input[s.offset] == Separator
}

// AtSpace reports whether the cursor is on whitespace.
func (s *Scanner) AtSpace() bool {
	return !s.AtEOF() && IsSpace(s.input[s.offset])
}

// AtIdentifier reports whether the cursor is on an identifier character.
func (s *Scanner) AtIdentifier() bool {
	r, _ := s.peek()
	return !s.AtEOF() && IsIdentifierRune(r)
}

// NextLiteralRun consumes text up to the next "{{" or end of input and
// returns it with its start position. With stopAtClose, a "}}" also ends the
// run. The returned text may be empty.
func (s *Scanner) NextLiteralRun(stopAtClose bool) (string, ast.Position) {
	start := s.Pos()
	for !s.AtEOF() {
		if s.AtOpen() || (stopAtClose && s.AtClose()) {
			break
		}
		s.advanceRune()
	}
	return s.input[start.Offset:s.offset], start
}

// ExpectOpen consumes "{{" and returns its position.
func (s *Scanner) ExpectOpen() (ast.Position, error) {
	pos := s.Pos()
	if !s.AtOpen() {
		return pos, tmplErrors.New(tmplErrors.KindUnterminatedDelimiter, pos,
			"expected %q, found %s", OpenMarker, s.describe())
	}
	s.advanceASCII(len(OpenMarker))
	return pos, nil
}

// ExpectClose consumes "}}" closing the variable opened at open. At end of
// input it fails with UnterminatedDelimiter at open; on any other text it
// fails with UnexpectedToken at the cursor.
func (s *Scanner) ExpectClose(open ast.Position) error {
	if s.AtEOF() {
		return tmplErrors.New(tmplErrors.KindUnterminatedDelimiter, open,
			"variable opened here is never closed")
	}
	if !s.AtClose() {
		pos := s.Pos()
		return tmplErrors.New(tmplErrors.KindUnexpectedToken, pos,
			"expected %q or %q, found %s", string(Separator), CloseMarker, s.describe())
	}
	s.advanceASCII(len(CloseMarker))
	return nil
}

// NextIdentifier consumes a run of identifier characters. It fails with
// InvalidIdentifier if the run is empty.
func (s *Scanner) NextIdentifier() (string, ast.Position, error) {
	start := s.Pos()
	for !s.AtEOF() {
		r, _ := s.peek()
		if !IsIdentifierRune(r) {
			break
		}
		s.advanceRune()
	}
	if s.offset == start.Offset {
		return "", start, tmplErrors.New(tmplErrors.KindInvalidIdentifier, start,
			"expected identifier, found %s", s.describe())
	}
	return s.input[start.Offset:s.offset], start, nil
}

// ConsumeSeparator consumes a "." if present.
func (s *Scanner) ConsumeSeparator() bool {
	if !s.AtSeparator() {
		return false
	}
	s.advanceASCII(1)
	return true
}

// SkipSpace consumes whitespace and returns the number of bytes skipped.
func (s *Scanner) SkipSpace() int {
	start := s.offset
	for s.AtSpace() {
		s.advanceRune()
	}
	return s.offset - start
}

// describe returns a short human description of the text at the cursor,
// for use in error messages.
func (s *Scanner) describe() string {
	switch {
	case s.AtEOF():
		return "end of input"
	case s.AtOpen():
		return fmt.Sprintf("%q", OpenMarker)
	case s.AtClose():
		return fmt.Sprintf("%q", CloseMarker)
	}
	r, _ := s.peek()
	return fmt.Sprintf("%q", r)
}

func (s *Scanner) peek() (rune, int) {
	if s.AtEOF() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.input[s.offset:])
}

func (s *Scanner) advanceRune() {
	r, size := s.peek()
	if size == 0 {
		return
	}
	s.offset += size
	if r == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
}

// advanceASCII skips n bytes known to be single-byte, non-newline characters.
func (s *Scanner) advanceASCII(n int) {
	s.offset += n
	s.column += n
}

// IsIdentifierRune reports whether r may appear in a path identifier.
func IsIdentifierRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsSpace reports whether b is whitespace that may pad a variable body.
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

package ast

import "fmt"

// Position is a location in the template source.
// Offset is the authoritative coordinate; Line and Column exist for humans.
type Position struct {
	Offset int // Byte offset into the input (0-based)
	Line   int // Line number (1-based)
	Column int // Column number counted in runes (1-based)
}

// String returns a human-readable representation of the position.
// Format: "line:column"
func (p Position) String() string {
	if !p.IsValid() {
		return "<unknown>"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid returns true if the position carries line information.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Package scanner implements the lexical layer of the template parser.
//
// The Scanner walks the input once, left to right, and exposes small
// context-free operations that the recursive-descent parser drives:
// literal runs, the "{{" and "}}" markers, identifier runs, the "."
// separator and whitespace. Offsets are byte offsets into the UTF-8 input;
// columns count runes.
//
// Tokens produces a flat token listing for debugging and tooling.
package scanner

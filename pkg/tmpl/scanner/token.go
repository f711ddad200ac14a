package scanner

import (
	"fmt"

	"mercator-hq/stencil/pkg/tmpl/ast"
)

// TokenKind classifies a lexical event.
type TokenKind string

const (
	TokenLiteral    TokenKind = "literal"
	TokenOpen       TokenKind = "open"
	TokenClose      TokenKind = "close"
	TokenIdentifier TokenKind = "identifier"
	TokenSeparator  TokenKind = "separator"
	TokenSpace      TokenKind = "space"
	TokenInvalid    TokenKind = "invalid"
	TokenEOF        TokenKind = "eof"
)

// Token is one lexical event with the text it covers.
type Token struct {
	Kind TokenKind    `json:"kind"`
	Text string       `json:"text,omitempty"`
	Pos  ast.Position `json:"pos"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Text)
}

// Tokens splits input into lexical events without validating structure.
// Outside markers everything up to the next "{{" is a single literal run;
// inside markers each marker, separator, identifier run and whitespace run
// is its own token. Characters that fit none of these become TokenInvalid.
// The last token is always TokenEOF.
func Tokens(input string) []Token {
	s := New(input)
	var toks []Token
	depth := 0

	emit := func(kind TokenKind, pos ast.Position) {
		toks = append(toks, Token{Kind: kind, Text: input[pos.Offset:s.offset], Pos: pos})
	}

	for !s.AtEOF() {
		pos := s.Pos()
		switch {
		case s.AtOpen():
			s.advanceASCII(len(OpenMarker))
			emit(TokenOpen, pos)
			depth++
		case depth == 0:
			s.NextLiteralRun(false)
			emit(TokenLiteral, pos)
		case s.AtClose():
			s.advanceASCII(len(CloseMarker))
			emit(TokenClose, pos)
			depth--
		case s.ConsumeSeparator():
			emit(TokenSeparator, pos)
		case s.SkipSpace() > 0:
			emit(TokenSpace, pos)
		case s.AtIdentifier():
			s.NextIdentifier()
			emit(TokenIdentifier, pos)
		default:
			s.advanceRune()
			emit(TokenInvalid, pos)
		}
	}

	toks = append(toks, Token{Kind: TokenEOF, Pos: s.Pos()})
	return toks
}

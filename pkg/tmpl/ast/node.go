package ast

import "strings"

// NodeKind identifies the concrete type of a Node.
type NodeKind string

const (
	KindDocument   NodeKind = "document"
	KindLiteral    NodeKind = "literal"
	KindVariable   NodeKind = "variable"
	KindIdentifier NodeKind = "identifier"
)

// Node is implemented by every AST node.
type Node interface {
	// Kind returns the node type.
	Kind() NodeKind

	// Pos returns the position of the first byte of the node.
	Pos() Position

	// End returns the byte offset just past the node.
	End() int

	// String returns the canonical template text for the node.
	String() string
}

// Inline is a direct child of a Document: *Literal or *Variable.
type Inline interface {
	Node
	inline()
}

// Segment is one dot-separated component of a variable path:
// *Identifier or a nested *Variable.
type Segment interface {
	Node
	segment()
}

// Document is the root of a parsed template. Nodes are kept in source order
// and adjacent Literals never occur.
type Document struct {
	Nodes     []Inline
	EndOffset int
}

func (d *Document) Kind() NodeKind { return KindDocument }
func (d *Document) Pos() Position  { return Position{Offset: 0, Line: 1, Column: 1} }
func (d *Document) End() int       { return d.EndOffset }

// String renders the document in canonical form. Whitespace padding inside
// markers is not preserved, so the result may differ from the parsed input.
func (d *Document) String() string {
	var sb strings.Builder
	for _, n := range d.Nodes {
		sb.WriteString(n.String())
	}
	return sb.String()
}

// Variables returns the top-level variables in source order.
func (d *Document) Variables() []*Variable {
	var vars []*Variable
	for _, n := range d.Nodes {
		if v, ok := n.(*Variable); ok {
			vars = append(vars, v)
		}
	}
	return vars
}

// Literal is a non-empty run of raw template text.
type Literal struct {
	Text  string
	Start Position
}

func (l *Literal) Kind() NodeKind { return KindLiteral }
func (l *Literal) Pos() Position  { return l.Start }
func (l *Literal) End() int       { return l.Start.Offset + len(l.Text) }
func (l *Literal) String() string { return l.Text }
func (l *Literal) inline()        {}

// Variable is an interpolation marker. Start points at the opening "{{"
// and EndOffset is just past the closing "}}".
type Variable struct {
	Segments  []Segment
	Start     Position
	EndOffset int
}

func (v *Variable) Kind() NodeKind { return KindVariable }
func (v *Variable) Pos() Position  { return v.Start }
func (v *Variable) End() int       { return v.EndOffset }
func (v *Variable) String() string { return "{{" + v.Path() + "}}" }
func (v *Variable) inline()        {}
func (v *Variable) segment()       {}

// Path returns the dotted path of the variable, e.g. "service.{{env}}.port".
func (v *Variable) Path() string {
	parts := make([]string, len(v.Segments))
	for i, s := range v.Segments {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// IsStatic reports whether every segment is a plain identifier.
func (v *Variable) IsStatic() bool {
	for _, s := range v.Segments {
		if _, ok := s.(*Variable); ok {
			return false
		}
	}
	return true
}

// Identifier is a plain path segment.
type Identifier struct {
	Name  string
	Start Position
}

func (i *Identifier) Kind() NodeKind { return KindIdentifier }
func (i *Identifier) Pos() Position  { return i.Start }
func (i *Identifier) End() int       { return i.Start.Offset + len(i.Name) }
func (i *Identifier) String() string { return i.Name }
func (i *Identifier) segment()       {}

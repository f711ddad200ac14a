package ast

import "encoding/json"

type jsonNode struct {
	Type     NodeKind `json:"type"`
	Offset   int      `json:"offset"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Text     string   `json:"text,omitempty"`
	Name     string   `json:"name,omitempty"`
	Path     string   `json:"path,omitempty"`
	Children []Node   `json:"children,omitempty"`
}

// MarshalJSON encodes the document with a "type" discriminator on every node.
func (d *Document) MarshalJSON() ([]byte, error) {
	children := make([]Node, len(d.Nodes))
	for i, n := range d.Nodes {
		children[i] = n
	}
	return json.Marshal(jsonNode{Type: KindDocument, Children: children})
}

func (l *Literal) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNode{
		Type:   KindLiteral,
		Offset: l.Start.Offset,
		Line:   l.Start.Line,
		Column: l.Start.Column,
		Text:   l.Text,
	})
}

func (v *Variable) MarshalJSON() ([]byte, error) {
	children := make([]Node, len(v.Segments))
	for i, s := range v.Segments {
		children[i] = s
	}
	return json.Marshal(jsonNode{
		Type:     KindVariable,
		Offset:   v.Start.Offset,
		Line:     v.Start.Line,
		Column:   v.Start.Column,
		Path:     v.Path(),
		Children: children,
	})
}

func (i *Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonNode{
		Type:   KindIdentifier,
		Offset: i.Start.Offset,
		Line:   i.Start.Line,
		Column: i.Start.Column,
		Name:   i.Name,
	})
}

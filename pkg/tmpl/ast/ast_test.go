package ast

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func pos(offset int) Position {
	return Position{Offset: offset, Line: 1, Column: offset + 1}
}

// sample builds the tree for "Config: {{service.{{env}}.port}}".
func sample() *Document {
	env := &Variable{
		Segments:  []Segment{&Identifier{Name: "env", Start: pos(20)}},
		Start:     pos(18),
		EndOffset: 25,
	}
	outer := &Variable{
		Segments: []Segment{
			&Identifier{Name: "service", Start: pos(10)},
			env,
			&Identifier{Name: "port", Start: pos(26)},
		},
		Start:     pos(8),
		EndOffset: 32,
	}
	return &Document{
		Nodes:     []Inline{&Literal{Text: "Config: ", Start: pos(0)}, outer},
		EndOffset: 32,
	}
}

func TestPosition_String(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{"valid", Position{Offset: 5, Line: 2, Column: 3}, "2:3"},
		{"zero", Position{}, "<unknown>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNode_String(t *testing.T) {
	doc := sample()
	if got, want := doc.String(), "Config: {{service.{{env}}.port}}"; got != want {
		t.Errorf("Document.String() = %q, want %q", got, want)
	}

	v := doc.Variables()[0]
	if got, want := v.Path(), "service.{{env}}.port"; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if v.IsStatic() {
		t.Error("IsStatic() = true for a variable with a nested segment")
	}
	if inner := v.Segments[1].(*Variable); !inner.IsStatic() {
		t.Error("IsStatic() = false for a plain variable")
	}
}

func TestNode_Extents(t *testing.T) {
	doc := sample()
	tests := []struct {
		name       string
		node       Node
		start, end int
	}{
		{"document", doc, 0, 32},
		{"literal", doc.Nodes[0], 0, 8},
		{"variable", doc.Nodes[1], 8, 32},
		{"identifier", doc.Variables()[0].Segments[0], 10, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Pos().Offset; got != tt.start {
				t.Errorf("Pos().Offset = %d, want %d", got, tt.start)
			}
			if got := tt.node.End(); got != tt.end {
				t.Errorf("End() = %d, want %d", got, tt.end)
			}
		})
	}
}

type kindCollector struct {
	kinds []NodeKind
	stop  NodeKind
}

func (c *kindCollector) visit(k NodeKind) error {
	c.kinds = append(c.kinds, k)
	if k == c.stop {
		return errors.New("stop")
	}
	return nil
}

func (c *kindCollector) VisitDocument(*Document) error     { return c.visit(KindDocument) }
func (c *kindCollector) VisitLiteral(*Literal) error       { return c.visit(KindLiteral) }
func (c *kindCollector) VisitVariable(*Variable) error     { return c.visit(KindVariable) }
func (c *kindCollector) VisitIdentifier(*Identifier) error { return c.visit(KindIdentifier) }

func TestWalk(t *testing.T) {
	t.Run("source order", func(t *testing.T) {
		c := &kindCollector{}
		if err := Walk(sample(), c); err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		want := []NodeKind{KindDocument, KindLiteral, KindVariable, KindIdentifier, KindVariable, KindIdentifier, KindIdentifier}
		if len(c.kinds) != len(want) {
			t.Fatalf("visited %v, want %v", c.kinds, want)
		}
		for i := range want {
			if c.kinds[i] != want[i] {
				t.Errorf("visit %d = %s, want %s", i, c.kinds[i], want[i])
			}
		}
	})

	t.Run("stops on error", func(t *testing.T) {
		c := &kindCollector{stop: KindVariable}
		if err := Walk(sample(), c); err == nil {
			t.Fatal("Walk() error = nil, want stop")
		}
		if len(c.kinds) != 3 {
			t.Errorf("visited %v after stop, want 3 nodes", c.kinds)
		}
	})
}

func TestInspect_SkipChildren(t *testing.T) {
	var names []string
	Inspect(sample(), func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			names = append(names, id.Name)
		}
		// Do not descend into nested variables.
		v, ok := n.(*Variable)
		return !ok || v.Start.Offset == 8
	})
	if got := strings.Join(names, ","); got != "service,port" {
		t.Errorf("identifiers = %q, want %q", got, "service,port")
	}
}

func TestCountAndDepth(t *testing.T) {
	tests := []struct {
		name      string
		doc       *Document
		wantNodes int
		wantDepth int
	}{
		{"empty", &Document{}, 1, 0},
		{"literal only", &Document{Nodes: []Inline{&Literal{Text: "x"}}}, 2, 0},
		{"nested", sample(), 7, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountNodes(tt.doc); got != tt.wantNodes {
				t.Errorf("CountNodes() = %d, want %d", got, tt.wantNodes)
			}
			if got := MaxDepth(tt.doc); got != tt.wantDepth {
				t.Errorf("MaxDepth() = %d, want %d", got, tt.wantDepth)
			}
		})
	}
}

func TestDocument_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(sample())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got struct {
		Type     string `json:"type"`
		Children []struct {
			Type     string `json:"type"`
			Offset   int    `json:"offset"`
			Text     string `json:"text"`
			Path     string `json:"path"`
			Children []struct {
				Type string `json:"type"`
				Name string `json:"name"`
				Path string `json:"path"`
			} `json:"children"`
		} `json:"children"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got.Type != "document" || len(got.Children) != 2 {
		t.Fatalf("unexpected document: %s", data)
	}
	if c := got.Children[0]; c.Type != "literal" || c.Text != "Config: " {
		t.Errorf("first child = %+v", c)
	}
	v := got.Children[1]
	if v.Type != "variable" || v.Offset != 8 || v.Path != "service.{{env}}.port" {
		t.Errorf("variable = %+v", v)
	}
	if len(v.Children) != 3 || v.Children[1].Type != "variable" || v.Children[1].Path != "env" {
		t.Errorf("segments = %+v", v.Children)
	}
}

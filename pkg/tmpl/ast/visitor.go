package ast

// Visitor provides an interface for traversing the AST.
// Implement this interface to perform operations on AST nodes
// (validation, analysis, rendering, etc.).
type Visitor interface {
	VisitDocument(*Document) error
	VisitLiteral(*Literal) error
	VisitVariable(*Variable) error
	VisitIdentifier(*Identifier) error
}

// Walk traverses the tree rooted at node in depth-first source order and
// calls the visitor for each node. It returns the first error encountered.
func Walk(node Node, visitor Visitor) error {
	switch n := node.(type) {
	case *Document:
		if err := visitor.VisitDocument(n); err != nil {
			return err
		}
		for _, child := range n.Nodes {
			if err := Walk(child, visitor); err != nil {
				return err
			}
		}
	case *Literal:
		return visitor.VisitLiteral(n)
	case *Variable:
		if err := visitor.VisitVariable(n); err != nil {
			return err
		}
		for _, seg := range n.Segments {
			if err := Walk(seg, visitor); err != nil {
				return err
			}
		}
	case *Identifier:
		return visitor.VisitIdentifier(n)
	}
	return nil
}

// Inspect traverses the tree rooted at node in depth-first source order.
// If fn returns false, the children of that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Document:
		for _, child := range n.Nodes {
			Inspect(child, fn)
		}
	case *Variable:
		for _, seg := range n.Segments {
			Inspect(seg, fn)
		}
	}
}

// CountNodes returns the number of nodes in the tree rooted at node,
// the root included.
func CountNodes(node Node) int {
	count := 0
	Inspect(node, func(Node) bool {
		count++
		return true
	})
	return count
}

// MaxDepth returns the deepest variable nesting under node.
// A top-level variable has depth 1; a document without variables has depth 0.
func MaxDepth(node Node) int {
	switch n := node.(type) {
	case *Document:
		deepest := 0
		for _, child := range n.Nodes {
			if d := MaxDepth(child); d > deepest {
				deepest = d
			}
		}
		return deepest
	case *Variable:
		deepest := 0
		for _, seg := range n.Segments {
			if d := MaxDepth(seg); d > deepest {
				deepest = d
			}
		}
		return deepest + 1
	}
	return 0
}

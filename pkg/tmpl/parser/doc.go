// Package parser implements the recursive-descent template parser.
//
// # Grammar
//
//	document   := (literal | variable)*
//	literal    := any text up to the next "{{"
//	variable   := "{{" path "}}"
//	path       := segment ("." segment)*
//	segment    := identifier | variable
//	identifier := (letter | digit | "_" | "-")+
//
// Whitespace is allowed immediately inside the outermost "{{ }}" pair only:
// "{{ a.{{b}} }}" is valid, "{{ a.{{ b }} }}" and "{{ a . b }}" are not.
//
// # Limits
//
// Each Parse call owns a guard that counts nesting depth and nodes. The
// guard is consulted before descending into a nested variable and before a
// node is created, so adversarial input fails with DepthExceeded or
// NodeCountExceeded long before stack or heap become a concern:
//
//	p, err := parser.New(parser.Config{MaxDepth: 4, MaxNodes: 256})
//	if err != nil {
//		return err // non-positive limit
//	}
//	doc, err := p.Parse(input)
//
// # Diagnostics
//
// WithSink attaches a diag.Sink that observes the parse. Without a sink no
// events are built and the clock is never read.
package parser

package parser

import (
	"mercator-hq/stencil/pkg/tmpl/ast"
	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"
)

// guard enforces the depth and node limits of a single parse.
type guard struct {
	maxDepth int
	maxNodes int
	depth    int
	nodes    int
}

func newGuard(cfg Config) *guard {
	return &guard{maxDepth: cfg.MaxDepth, maxNodes: cfg.MaxNodes}
}

// enter increments the depth. It fails without changing state if the new
// depth would exceed the limit; on success the caller must call exit.
func (g *guard) enter(pos ast.Position) error {
	if g.depth+1 > g.maxDepth {
		return tmplErrors.NewLimit(tmplErrors.KindDepthExceeded, pos, g.maxDepth,
			"variable nesting exceeds maximum depth of %d", g.maxDepth)
	}
	g.depth++
	return nil
}

func (g *guard) exit() {
	g.depth--
}

// register counts a node about to be created at pos.
func (g *guard) register(pos ast.Position) error {
	if g.nodes+1 > g.maxNodes {
		return tmplErrors.NewLimit(tmplErrors.KindNodeCountExceeded, pos, g.maxNodes,
			"template exceeds maximum of %d nodes", g.maxNodes)
	}
	g.nodes++
	return nil
}

package parser

import (
	tmplErrors "mercator-hq/stencil/pkg/tmpl/errors"
)

const (
	// DefaultMaxDepth bounds variable-inside-variable nesting.
	DefaultMaxDepth = 32

	// DefaultMaxNodes bounds the total number of AST nodes, Document included.
	DefaultMaxNodes = 4096
)

// Config holds the limits for a parse. The zero value is not valid; use
// DefaultConfig or NewConfig.
type Config struct {
	// MaxDepth is the maximum nesting of variables. A top-level variable
	// has depth 1.
	MaxDepth int

	// MaxNodes is the maximum number of nodes in the resulting tree.
	MaxNodes int

	// StrictClose rejects a "}}" that does not close a variable with
	// UnexpectedToken. When false such text is literal.
	StrictClose bool
}

// DefaultConfig returns the default limits.
func DefaultConfig() Config {
	return Config{
		MaxDepth: DefaultMaxDepth,
		MaxNodes: DefaultMaxNodes,
	}
}

// NewConfig returns a validated configuration with the given limits.
func NewConfig(maxDepth, maxNodes int) (Config, error) {
	cfg := Config{MaxDepth: maxDepth, MaxNodes: maxNodes}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate returns a *ConfigError if a limit is not positive.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return &tmplErrors.ConfigError{Field: "max_depth", Value: c.MaxDepth, Message: "must be greater than 0"}
	}
	if c.MaxNodes <= 0 {
		return &tmplErrors.ConfigError{Field: "max_nodes", Value: c.MaxNodes, Message: "must be greater than 0"}
	}
	return nil
}

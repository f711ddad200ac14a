package tmpl

import (
	"fmt"
	"os"

	"mercator-hq/stencil/pkg/tmpl/ast"
	"mercator-hq/stencil/pkg/tmpl/parser"
)

// DefaultMaxFileSize is the largest template ParseFile will read (10MB).
const DefaultMaxFileSize = 10 * 1024 * 1024

// Parse parses a template with the default limits.
func Parse(input string) (*ast.Document, error) {
	return parser.Parse(input)
}

// ParseWithConfig parses a template with explicit limits. It fails with a
// *errors.ConfigError before parsing if cfg is invalid.
func ParseWithConfig(input string, cfg parser.Config) (*ast.Document, error) {
	p, err := parser.New(cfg)
	if err != nil {
		return nil, err
	}
	return p.Parse(input)
}

// MustParse is like Parse but panics on error. It is intended for templates
// embedded in source code.
func MustParse(input string) *ast.Document {
	doc, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("tmpl: Parse(%q): %v", input, err))
	}
	return doc
}

// ReadFile reads a template file, refusing files larger than maxSize bytes.
// A maxSize of 0 uses DefaultMaxFileSize.
func ReadFile(path string, maxSize int64) (string, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access template %q: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("template %q is a directory", path)
	}
	if info.Size() > maxSize {
		return "", fmt.Errorf("template %q is %d bytes, exceeds maximum %d bytes", path, info.Size(), maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %q: %w", path, err)
	}
	return string(data), nil
}

// ParseFile reads and parses a template file with p. I/O failures are
// returned as wrapped errors; parse failures as *errors.Error.
func ParseFile(p *parser.Parser, path string, maxSize int64) (*ast.Document, string, error) {
	source, err := ReadFile(path, maxSize)
	if err != nil {
		return nil, "", err
	}
	doc, err := p.Parse(source)
	return doc, source, err
}

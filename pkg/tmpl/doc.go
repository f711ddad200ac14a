// Package tmpl parses mustache-style templates with nested variables.
//
// A template is literal text interleaved with variables. A variable is a
// dotted path between "{{" and "}}", and any path segment may itself be a
// variable:
//
//	Hello {{name}}!
//	Config: {{service.{{env}}.port}}
//
// Parsing produces an *ast.Document or a single typed *errors.Error. The
// parser does not render templates, escape output or support sections.
//
// # Quick Start
//
//	doc, err := tmpl.Parse("Config: {{service.{{env}}.port}}")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, v := range doc.Variables() {
//		fmt.Println(v.Path()) // service.{{env}}.port
//	}
//
// # Limits
//
// Nesting depth and node count are bounded per parse (defaults 32 and 4096).
// Use ParseWithConfig or parser.New to change them:
//
//	doc, err := tmpl.ParseWithConfig(input, parser.Config{MaxDepth: 4, MaxNodes: 100})
//
// # Errors
//
// Every failure carries a kind and a byte offset:
//
//	unterminated_delimiter  "{{a"        offset of the unmatched "{{"
//	invalid_identifier      "{{}}"       offset where a name was expected
//	depth_exceeded          too deep     offset of the "{{" that was too deep
//	node_count_exceeded     too large    offset of the node over the limit
//	unexpected_token        "{{a b}}"    offset of the offending text
//
// # Packages
//
//	ast      syntax tree, visitors, JSON encoding
//	errors   error kinds, sentinels, source excerpts
//	scanner  lexical layer and token dump
//	parser   limits and recursive descent
//	diag     optional event sink
package tmpl

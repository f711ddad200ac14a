// Stencil parses and lints nested-interpolation templates such as
// "Config: {{service.{{env}}.port}}".
//
// Usage:
//
//	# Print the syntax tree of a template
//	stencil parse page.tmpl
//
//	# Dump scanner tokens from stdin
//	echo 'Hello {{name}}!' | stencil tokens
//
//	# Lint a directory of templates
//	stencil lint --dir templates/
//
//	# Re-lint on change and serve metrics
//	stencil watch --dir templates/ --metrics-addr :9090
//
//	# Show recent failures from the lint history
//	stencil history --failed --limit 20
package main

func main() {
	Execute()
}

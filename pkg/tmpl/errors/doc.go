// Package errors defines the typed failures returned by the template parser.
//
// Every malformed input produces exactly one *Error carrying a Kind and the
// byte offset at which the problem was detected:
//
//	doc, err := parser.Parse("{{}}")
//	if errors.Is(err, tmplErrors.ErrInvalidIdentifier) {
//		fmt.Println(tmplErrors.OffsetOf(err)) // 2
//	}
//
// Configuration mistakes (non-positive limits) are reported separately as
// *ConfigError when a parser is constructed.
//
// WithSource decorates an error with a caret excerpt for terminal output:
//
//	[invalid_identifier] expected identifier, found "}}" at 1:3 (offset 2)
//	  |
//	-> 1 | {{}}
//	     |   ^
//	  |
//	  = suggestion: path segments must contain letters, digits, '_' or '-'
package errors

package errors

func suggestionFor(kind Kind) string {
	switch kind {
	case KindUnterminatedDelimiter:
		return `close the variable with "}}"`
	case KindInvalidIdentifier:
		return "path segments must contain letters, digits, '_' or '-'"
	case KindDepthExceeded:
		return "reduce the nesting of variables or raise parser.max_depth"
	case KindNodeCountExceeded:
		return "split the template or raise parser.max_nodes"
	case KindUnexpectedToken:
		return `separate path segments with "." and close variables with "}}"`
	}
	return ""
}

package store

import (
	"fmt"
	"strings"
)

// Formula helpers compose predicates in the store's boolean-expression syntax.
// The syntax is string-based on the wire; these helpers only exist to keep the
// quoting rules in one place.

// EqField builds a `{field} = 'value'` clause. Single quotes in the value are
// backslash-escaped, the only escape the formula language understands.
func EqField(field, value string) string {
	return fmt.Sprintf("{%s} = '%s'", field, strings.ReplaceAll(value, "'", "\\'"))
}

// And conjoins clauses, dropping empties. Zero clauses yield the empty filter,
// a single clause is returned bare.
func And(clauses ...string) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if strings.TrimSpace(c) != "" {
			parts = append(parts, c)
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return fmt.Sprintf("AND(%s)", strings.Join(parts, ", "))
	}
}

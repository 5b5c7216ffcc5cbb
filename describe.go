package objectvalidation

import "strings"

// Describe returns a documentation-only facet that appends desc to the
// property description.
func Describe(desc string) Facet {
	return func(r *PropertyRule) {
		if r.Description != "" && !strings.HasSuffix(r.Description, " ") {
			r.Description += " "
		}
		r.Description += desc
	}
}

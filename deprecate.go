package objectvalidation

// Deprecate returns a documentation-only facet that marks the property as
// deprecated in the generated schema.
func Deprecate() Facet {
	return func(r *PropertyRule) {
		r.Deprecated = true
	}
}

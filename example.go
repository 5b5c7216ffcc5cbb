package objectvalidation

// Example returns a documentation-only facet that sets the schema example value.
func Example(ex any) Facet {
	return func(r *PropertyRule) {
		r.Example = ex
	}
}

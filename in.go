package objectvalidation

// In restricts a present, non-null value to the given values. Numbers match
// across representations, so In(1, 2) accepts a decoded json.Number "2".
func In(values ...any) Facet {
	return func(r *PropertyRule) {
		r.AllowedValues = append(r.AllowedValues, values...)
	}
}

// allows reports whether value passes the allowed values facet. An empty
// set allows everything.
func (r *PropertyRule) allows(value any) bool {
	return len(r.AllowedValues) == 0 || contains(r.AllowedValues, value)
}

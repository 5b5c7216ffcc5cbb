package objectvalidation

// Forbidden requires the property to be absent from the object.
var Forbidden Facet = func(r *PropertyRule) {
	r.Forbidden = true
}

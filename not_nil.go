package objectvalidation

// AlwaysPresent requires the property to exist and never be null.
var AlwaysPresent Facet = func(r *PropertyRule) {
	r.AlwaysPresent = true
}

// Nullable permits null for a present property.
var Nullable = AllowNull(true)

// NotNull rejects null for a present property.
var NotNull = AllowNull(false)

// AllowNull sets whether a present property may be null.
func AllowNull(allow bool) Facet {
	return func(r *PropertyRule) {
		r.AllowNull = Force(allow)
	}
}

// nullable is the effective null tolerance of the rule. AlwaysPresent rules
// never tolerate null; rules that say nothing about null accept it.
func (r *PropertyRule) nullable() bool {
	if r.AlwaysPresent {
		return false
	}
	return r.AllowNull == nil || *r.AllowNull
}

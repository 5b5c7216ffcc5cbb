package objectvalidation

// Required marks the property as required. Options.ForceRequired can relax
// or escalate it per call.
var Required Facet = func(r *PropertyRule) {
	r.Required = Force(true)
}

// Optional records an explicit required: false. The property may be omitted
// unless the call forces required properties.
var Optional Facet = func(r *PropertyRule) {
	r.Required = Force(false)
}

// required resolves the Required facet against the call options.
func (r *PropertyRule) required(force *bool) bool {
	if r.Required == nil {
		return false
	}
	if force != nil {
		return *force
	}
	return *r.Required
}

package objectvalidation

// Facet sets one facet of a PropertyRule. Facets are applied in order.
type Facet func(r *PropertyRule)

// Prop creates a Property named name with the given facets.
//
//	schema := Schema{
//	    Prop("id", Forbidden),
//	    Prop("name", IsString, AlwaysPresent, NotNull),
//	    Prop("counter", IsNumber, Nullable),
//	}
func Prop(name string, facets ...Facet) Property {
	p := Property{Name: name}
	for _, f := range facets {
		if f != nil {
			f(&p.Rule)
		}
	}
	return p
}

// Type facets.
var (
	IsString  = OfType(TypeString)
	IsNumber  = OfType(TypeNumber)
	IsBoolean = OfType(TypeBoolean)
	IsArray   = OfType(TypeArray)
	IsObject  = OfType(TypeObject)
)

// OfType sets the primitive type of the property.
func OfType(t Type) Facet {
	return func(r *PropertyRule) {
		r.Type = t
	}
}

// OneOf requires at least one of names to be present whenever the property is.
func OneOf(names ...string) Facet {
	return func(r *PropertyRule) {
		r.OneOf = append(r.OneOf, names...)
	}
}

// Depends attaches dependency rules to the property.
func Depends(deps ...Dependency) Facet {
	return func(r *PropertyRule) {
		r.Depends = append(r.Depends, deps...)
	}
}

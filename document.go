package objectvalidation

import (
	"reflect"

	json "github.com/goccy/go-json"
)

type (
	// Object is a loosely typed value such as a freshly decoded JSON object.
	Object = map[string]any

	// Type is the primitive type a property value must have.
	Type string

	// PropertyRule is the set of facets checked for one property. Every facet
	// is optional; a zero PropertyRule accepts anything.
	PropertyRule struct {
		// Forbidden properties must be absent. No other facet is evaluated.
		Forbidden bool `json:"forbidden,omitempty"`
		Type      Type `json:"type,omitempty"`
		// AlwaysPresent makes the property mandatory and never null.
		AlwaysPresent bool `json:"alwaysPresent,omitempty"`
		// AllowNull is nil when the rule says nothing about null.
		AllowNull *bool `json:"allowNull,omitempty"`
		// Required is a soft requirement that Options.ForceRequired overrides.
		Required      *bool        `json:"required,omitempty"`
		OneOf         []string     `json:"oneOf,omitempty"`
		AllowedValues []any        `json:"allowedValues,omitempty"`
		Depends       []Dependency `json:"depends,omitempty"`

		// Documentation only, used when describing the schema in OpenAPI.
		Description string `json:"description,omitempty"`
		Example     any    `json:"example,omitempty"`
		Deprecated  bool   `json:"deprecated,omitempty"`
	}

	// Property binds a property name to its rule.
	Property struct {
		Name string
		Rule PropertyRule
	}

	// Schema is an ordered list of properties. Properties are checked in
	// order, which decides the violation returned in fail-fast mode.
	Schema []Property

	// Options tune a single Validate call.
	Options struct {
		// FailFast stops at the first violation and returns it.
		FailFast bool
		// ForceRequired, when set, overrides the Required facet of every rule.
		ForceRequired *bool
		// Reporter receives every violation in collect-all mode. Nil logs
		// through slog.Default().
		Reporter Reporter
	}
)

// Primitive types understood by Type.Matches.
const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Types lists every supported Type.
var Types = []Type{TypeString, TypeNumber, TypeBoolean, TypeArray, TypeObject}

// Force returns a pointer to b, for Options.ForceRequired.
func Force(b bool) *bool {
	return &b
}

// Matches reports whether value has type t. Arrays and objects are checked
// structurally: any slice or array is an array, any map keyed by strings is
// an object.
func (t Type) Matches(value any) bool {
	switch t {
	case TypeNumber:
		_, ok := toNumber(value)
		return ok
	case TypeString:
		if _, ok := value.(json.Number); ok {
			return false
		}
		return kindOf(value) == reflect.String
	case TypeBoolean:
		return kindOf(value) == reflect.Bool
	case TypeArray:
		k := kindOf(value)
		return k == reflect.Slice || k == reflect.Array
	case TypeObject:
		rv := reflect.ValueOf(value)
		return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
	}
	return false
}

// Lookup returns the property rule for name.
func (s Schema) Lookup(name string) (PropertyRule, bool) {
	for _, p := range s {
		if p.Name == name {
			return p.Rule, true
		}
	}
	return PropertyRule{}, false
}

// Names returns the property names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i := range s {
		names[i] = s[i].Name
	}
	return names
}

func kindOf(value any) reflect.Kind {
	return reflect.ValueOf(value).Kind()
}

package objectvalidation

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Extension keys carrying the facets OpenAPI cannot express.
const (
	ExtensionOneOf   = "x-one-of-properties"
	ExtensionDepends = "x-depends"
)

// NewSchemaRef describes s as an OpenAPI 3 object schema.
func NewSchemaRef(s Schema) (*openapi3.SchemaRef, error) {
	schema := openapi3.NewObjectSchema()
	for i := range s {
		ref := &openapi3.SchemaRef{Value: openapi3.NewSchema()}
		if err := s[i].Rule.Describe(s[i].Name, schema, ref); err != nil {
			return nil, err
		}
		schema.WithPropertyRef(s[i].Name, ref)
	}
	return openapi3.NewSchemaRef("", schema), nil
}

// OpenAPI is NewSchemaRef for callers that only need the schema value.
func (s Schema) OpenAPI() (*openapi3.Schema, error) {
	ref, err := NewSchemaRef(s)
	if err != nil {
		return nil, err
	}
	return ref.Value, nil
}

// Describe writes the rule for property name into ref, and adds name to the
// required list of the parent schema when the property is mandatory.
func (r PropertyRule) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if r.Forbidden {
		ref.Value.Not = &openapi3.SchemaRef{Value: openapi3.NewSchema()}
		appendDescription(ref.Value, r.Description)
		appendDescription(ref.Value, "must not be present")
		ref.Value.Deprecated = r.Deprecated
		return nil
	}

	switch r.Type {
	case TypeString:
		ref.Value = openapi3.NewStringSchema().WithMinLength(1)
	case TypeNumber:
		ref.Value = openapi3.NewFloat64Schema().WithMin(0)
	case TypeBoolean:
		ref.Value = openapi3.NewBoolSchema()
	case TypeArray:
		ref.Value = openapi3.NewArraySchema().WithItems(openapi3.NewSchema())
	case TypeObject:
		ref.Value = openapi3.NewObjectSchema()
	}

	v := ref.Value
	v.Nullable = r.nullable()
	if len(r.AllowedValues) > 0 {
		v.Enum = append([]any(nil), r.AllowedValues...)
	}
	if r.AlwaysPresent || (r.Required != nil && *r.Required) {
		schema.Required = append(schema.Required, name)
	}
	appendDescription(v, r.Description)
	if len(r.OneOf) > 0 {
		appendDescription(v, "requires one of "+strings.Join(r.OneOf, ", "))
		setExtension(v, ExtensionOneOf, append([]string(nil), r.OneOf...))
	}
	if len(r.Depends) > 0 {
		descs := make([]string, 0, len(r.Depends))
		for _, d := range r.Depends {
			if desc := describeDependency(d); desc != "" {
				descs = append(descs, desc)
			}
		}
		appendDescription(v, strings.Join(descs, ", "))
		setExtension(v, ExtensionDepends, descs)
	}
	if r.Example != nil {
		v.Example = r.Example
	}
	v.Deprecated = r.Deprecated
	return nil
}

func appendDescription(s *openapi3.Schema, desc string) {
	if desc == "" {
		return
	}
	if s.Description != "" && !strings.HasSuffix(s.Description, " ") {
		s.Description += " "
	}
	s.Description += desc
}

func setExtension(s *openapi3.Schema, key string, value any) {
	if s.Extensions == nil {
		s.Extensions = map[string]any{}
	}
	s.Extensions[key] = value
}

package openapi

import (
	ov "github.com/Gobd/objectvalidation"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// NewSchemaRefForValue generates an OpenAPI schema for value. An
// [objectvalidation.Schema] is described from its rules, anything else from
// its Go type.
func NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	switch s := value.(type) {
	case ov.Schema:
		return ov.NewSchemaRef(s)
	case *ov.Schema:
		return ov.NewSchemaRef(*s)
	}
	return openapi3gen.NewSchemaRefForValue(value, nil)
}

// Package objectvalidation validates loosely typed objects, such as freshly
// decoded JSON, against a declarative schema.
//
// A schema is an ordered list of properties, each with a rule built from
// facets:
//
//	schema := Schema{
//	    Prop("id", Forbidden),
//	    Prop("name", IsString, AlwaysPresent),
//	    Prop("phone", IsString, Nullable, OneOf("cellphone")),
//	    Prop("kind", IsString, In("user", "reviewer"), Depends(Exists("name"))),
//	}
//
// Then validate with a single call:
//
//	obj, err := Validate(input, schema, Options{})
//
// By default every violation is collected, reported to Options.Reporter and
// returned as [Violations]. With Options.FailFast the first violation is
// returned as a [*Violation]. Both match [ErrInvalid] with errors.Is. The
// object is never modified or coerced.
//
// For HTTP handlers, [UnmarshalAndValidate] and [DecodeAndValidate] combine
// JSON decoding with validation in one step. Schemas can also be read from
// YAML or JSON documents with [ParseSchema] and described as OpenAPI 3 with
// [NewSchemaRef].
//
// Sub-packages:
//   - openapi – OpenAPI documents with Schema bodies and a handler serving them
package objectvalidation

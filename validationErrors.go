package objectvalidation

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationErrors is a map of property names to their validation errors.
// It is an alias for [validation.Errors] from ozzo-validation and implements
// the error interface with a JSON-friendly string representation.
type ValidationErrors = validation.Errors

var (
	// ErrInvalid matches every violation and every Violations list with errors.Is.
	ErrInvalid = errors.New("object is invalid")
	// ErrDecode is wrapped around JSON decoding failures.
	ErrDecode = errors.New("cannot decode object")
	// ErrSchema is wrapped around schema documents and rules that cannot be used.
	ErrSchema = errors.New("invalid schema")
)

// Message catalogue. Messages are text/templates rendered with the "prop"
// and "dep" params.
var (
	ErrForbidden = validation.NewError("object_property_forbidden",
		`Property "{{.prop}}" cannot be present.`)
	ErrRequired = validation.NewError("object_property_required",
		`Property "{{.prop}}" is required and should be present, but it is not.`)
	ErrAlwaysPresent = validation.NewError("object_property_always_present",
		`Property "{{.prop}}" should always be present, but it is not.`)
	ErrRequiredNotNull = validation.NewError("object_property_required_not_null",
		`Property "{{.prop}}" is required and cannot be null.`)
	ErrNotNull = validation.NewError("object_property_not_null",
		`Property "{{.prop}}" cannot be null.`)
	ErrOneOf = validation.NewError("object_property_one_of",
		`None of the optional properties required by "{{.prop}}" are present.`)
	ErrType = validation.NewError("object_property_type",
		`Property "{{.prop}}" type is invalid.`)
	ErrEmpty = validation.NewError("object_property_empty",
		`Property "{{.prop}}" is empty.`)
	ErrNegative = validation.NewError("object_property_negative",
		`Property "{{.prop}}" cannot be a negative number.`)
	ErrValues = validation.NewError("object_property_values",
		`Property "{{.prop}}" values are invalid.`)
	ErrDependencyPresent = validation.NewError("object_dependency_present",
		`Property "{{.dep}}" should not be present for "{{.prop}}" to be valid.`)
	ErrDependencyMissing = validation.NewError("object_dependency_missing",
		`Property "{{.dep}}" is missing.`)
	ErrDependencyValue = validation.NewError("object_dependency_value",
		`Property "{{.prop}}" requires "{{.dep}}" to have another value.`)
)

// Kind separates violations of a property's own facets from violations of
// its dependency rules.
type Kind int

const (
	StructuralViolation Kind = iota
	DependencyViolation
)

func (k Kind) String() string {
	if k == DependencyViolation {
		return "dependency"
	}
	return "structural"
}

// Violation is a single failed check.
type Violation struct {
	// Property is the property whose rule failed.
	Property string
	// Dependency is the other property involved, for dependency violations.
	Dependency string
	Kind       Kind
	Err        validation.Error
}

func newViolation(err validation.Error, prop string) *Violation {
	return &Violation{
		Property: prop,
		Kind:     StructuralViolation,
		Err:      err.SetParams(map[string]any{"prop": prop}),
	}
}

func newDependencyViolation(err validation.Error, prop, dep string) *Violation {
	return &Violation{
		Property:   prop,
		Dependency: dep,
		Kind:       DependencyViolation,
		Err:        err.SetParams(map[string]any{"prop": prop, "dep": dep}),
	}
}

// Error returns the rendered catalogue message.
func (v *Violation) Error() string {
	return v.Err.Error()
}

// Code returns the catalogue code, e.g. "object_property_empty".
func (v *Violation) Code() string {
	return v.Err.Code()
}

// Is matches ErrInvalid and catalogue entries by code.
func (v *Violation) Is(target error) bool {
	if target == ErrInvalid {
		return true
	}
	var ve validation.Error
	if errors.As(target, &ve) {
		return ve.Code() == v.Code()
	}
	return false
}

// Violations lists every violation of a collect-all run in discovery order.
type Violations []*Violation

func (vs Violations) Error() string {
	return strings.Join(vs.Messages(), " ")
}

// Is matches ErrInvalid.
func (vs Violations) Is(target error) bool {
	return target == ErrInvalid && len(vs) > 0
}

// Messages returns the rendered messages in order.
func (vs Violations) Messages() []string {
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.Error()
	}
	return msgs
}

// Properties returns the names of the properties with violations, each once,
// in order of first violation.
func (vs Violations) Properties() []string {
	var props []string
	seen := map[string]bool{}
	for _, v := range vs {
		if !seen[v.Property] {
			seen[v.Property] = true
			props = append(props, v.Property)
		}
	}
	return props
}

// Errors groups the violations by property. A property with several
// violations gets them joined in order.
func (vs Violations) Errors() ValidationErrors {
	grouped := map[string][]error{}
	for _, v := range vs {
		grouped[v.Property] = append(grouped[v.Property], v)
	}
	errs := ValidationErrors{}
	for prop, list := range grouped {
		if len(list) == 1 {
			errs[prop] = list[0]
			continue
		}
		errs[prop] = errors.Join(list...)
	}
	return errs
}

// AsViolations extracts violations from an error returned by Validate. A
// fail-fast error yields a list of one.
func AsViolations(err error) (Violations, bool) {
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	var v *Violation
	if errors.As(err, &v) {
		return Violations{v}, true
	}
	return nil, false
}

package objectvalidation

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	errForbiddenCombined = validation.NewError("schema_forbidden_combined",
		"cannot be combined with other facets")
	errNullContradiction = validation.NewError("schema_null_contradiction",
		"allowNull: true contradicts alwaysPresent")
	errDependencyName = validation.NewError("schema_dependency_name",
		"must name a property")
	errDuplicate = validation.NewError("schema_duplicate_property",
		"is declared more than once")
)

// Check reports rules that cannot mean what they say: unknown types,
// forbidden properties carrying other facets, alwaysPresent with
// allowNull: true, empty property names in oneOf or depends, and duplicate
// properties. The result wraps ErrSchema and a ValidationErrors keyed by
// property name. Validate never calls Check.
//
// Use in tests to catch schema typos:
//
//	require.NoError(t, schema.Check())
func (s Schema) Check() error {
	errs := ValidationErrors{}
	seen := map[string]bool{}
	for i := range s {
		name := s[i].Name
		key := name
		if key == "" {
			key = fmt.Sprintf("#%d", i)
		}
		if seen[name] {
			errs[key] = errDuplicate
			continue
		}
		seen[name] = true
		if err := s[i].Rule.Validate(); err != nil {
			errs[key] = err
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrSchema, errs)
	}
	return nil
}

// Validate implements validation.Validatable for a single rule.
func (r PropertyRule) Validate() error {
	types := make([]any, len(Types))
	for i := range Types {
		types[i] = Types[i]
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Forbidden, validation.By(func(any) error {
			if r.Forbidden && r.hasFacets() {
				return errForbiddenCombined
			}
			return nil
		})),
		validation.Field(&r.Type, validation.In(types...)),
		validation.Field(&r.AllowNull, validation.By(func(any) error {
			if r.AlwaysPresent && r.AllowNull != nil && *r.AllowNull {
				return errNullContradiction
			}
			return nil
		})),
		validation.Field(&r.OneOf, validation.Each(validation.Required)),
		validation.Field(&r.Depends, validation.Each(validation.By(checkDependency))),
	)
}

func (r *PropertyRule) hasFacets() bool {
	return r.Type != "" || r.AlwaysPresent || r.AllowNull != nil || r.Required != nil ||
		len(r.OneOf) > 0 || len(r.AllowedValues) > 0 || len(r.Depends) > 0
}

func checkDependency(value any) error {
	d, ok := value.(Dependency)
	if !ok || d == nil {
		return errDependencyName
	}
	if d.On() == "" {
		return errDependencyName
	}
	switch d := d.(type) {
	case PresentEqualsProperty:
		if d.Other == "" {
			return errDependencyName
		}
	case PresentNotEqualsProperty:
		if d.Other == "" {
			return errDependencyName
		}
	}
	return nil
}

// AsValidationErrors extracts the per-property errors of Check.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var errs ValidationErrors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

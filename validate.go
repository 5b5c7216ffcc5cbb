package objectvalidation

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	json "github.com/goccy/go-json"
)

// Validate checks obj against every property of s, in order.
//
// On success it returns obj unchanged and a nil error. In fail-fast mode the
// first violation stops the run and is returned as a *Violation. Otherwise
// every violation is handed to opts.Reporter as it is found, the whole
// schema is visited, and the ordered Violations are returned. Both error
// kinds match ErrInvalid. obj is never modified.
func Validate(obj Object, s Schema, opts Options) (Object, error) {
	e := &evaluator{
		obj:      obj,
		force:    opts.ForceRequired,
		failFast: opts.FailFast,
		reporter: opts.reporter(),
	}
	for i := range s {
		if e.property(s[i].Name, &s[i].Rule) {
			break
		}
	}
	if e.first != nil {
		return nil, e.first
	}
	if len(e.violations) > 0 {
		return nil, e.violations
	}
	return obj, nil
}

// Check is Validate reduced to its verdict.
func Check(obj Object, s Schema, opts Options) bool {
	_, err := Validate(obj, s, opts)
	return err == nil
}

// UnmarshalAndValidate decodes a JSON object from b, then validates it.
// Numbers are decoded as json.Number.
func UnmarshalAndValidate(b []byte, s Schema, opts Options) (Object, error) {
	return DecodeAndValidate(bytes.NewReader(b), s, opts)
}

// DecodeAndValidate reads a JSON object from r using a streaming decoder,
// then validates it. Use this instead of [UnmarshalAndValidate] when reading
// directly from an [io.Reader] such as an HTTP request body.
func DecodeAndValidate(r io.Reader, s Schema, opts Options) (Object, error) {
	obj, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return Validate(obj, s, opts)
}

// Decode reads one JSON object from r with numbers kept as json.Number.
func Decode(r io.Reader) (Object, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var obj Object
	if err := decoder.Decode(&obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("%w: not an object", ErrDecode)
	}
	return obj, nil
}

type evaluator struct {
	obj        Object
	force      *bool
	failFast   bool
	reporter   Reporter
	first      *Violation
	violations Violations
}

// violate records v and reports whether the run must stop.
func (e *evaluator) violate(v *Violation) bool {
	if e.failFast {
		e.first = v
		return true
	}
	e.violations = append(e.violations, v)
	e.reporter.Report(v)
	return false
}

// lookup returns the value of a property. Nil pointers, maps and slices
// read as null.
func (e *evaluator) lookup(name string) (any, bool) {
	v, ok := e.obj[name]
	if !ok {
		return nil, false
	}
	v, isNil := validation.Indirect(v)
	if isNil {
		return nil, true
	}
	return v, true
}

func (e *evaluator) anyPresent(names []string) bool {
	for _, name := range names {
		if _, ok := e.obj[name]; ok {
			return true
		}
	}
	return false
}

// property runs the checks of one rule in their fixed order. Later checks
// rely on earlier ones having filtered absent and null values. It reports
// whether the run must stop.
func (e *evaluator) property(name string, r *PropertyRule) bool {
	value, present := e.lookup(name)

	if r.Forbidden {
		return present && e.violate(newViolation(ErrForbidden, name))
	}

	required := r.required(e.force)
	if required && !present && e.violate(newViolation(ErrRequired, name)) {
		return true
	}

	if r.AlwaysPresent {
		switch {
		case !present:
			if e.violate(newViolation(ErrAlwaysPresent, name)) {
				return true
			}
		case value == nil && (r.AllowNull == nil || *r.AllowNull):
			// An explicit allowNull: false is reported by the null check.
			if e.violate(newViolation(ErrRequiredNotNull, name)) {
				return true
			}
		}
	}

	if present && value == nil && r.AllowNull != nil && !*r.AllowNull {
		if e.violate(newViolation(ErrNotNull, name)) {
			return true
		}
	}

	if present && len(r.OneOf) > 0 && !e.anyPresent(r.OneOf) {
		if e.violate(newViolation(ErrOneOf, name)) {
			return true
		}
	}

	if !present && !required && !r.AlwaysPresent {
		return false
	}

	// Null was accepted or reported above, and absence has no type.
	if present && value != nil {
		if e.value(name, r, value) {
			return true
		}
	}

	for _, d := range r.Depends {
		if e.dependency(name, d) {
			return true
		}
	}
	return false
}

// value runs the type, empty string, negative number and allowed values
// checks on a present, non-null value.
func (e *evaluator) value(name string, r *PropertyRule, value any) bool {
	if r.Type != "" && !r.Type.Matches(value) {
		if e.violate(newViolation(ErrType, name)) {
			return true
		}
	}

	if r.Type == TypeString && r.Type.Matches(value) && reflect.ValueOf(value).String() == "" {
		if e.violate(newViolation(ErrEmpty, name)) {
			return true
		}
	}

	if r.Type == TypeNumber {
		if n, ok := toNumber(value); ok && n < 0 {
			if e.violate(newViolation(ErrNegative, name)) {
				return true
			}
		}
	}

	if !r.allows(value) {
		if e.violate(newViolation(ErrValues, name)) {
			return true
		}
	}
	return false
}

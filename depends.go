package objectvalidation

import "fmt"

// Dependency is a condition on another property that must hold for the
// owning property to be valid. The set of implementations is closed:
// Existence, AbsentCondition, PresentEqualsLiteral, PresentEqualsProperty,
// PresentNotEqualsLiteral and PresentNotEqualsProperty.
type Dependency interface {
	// On returns the name of the property the condition looks at.
	On() string
	dependency()
}

type (
	// Existence requires the property to be present with a value that is
	// not null, false or the empty string. Zero satisfies it.
	Existence struct {
		Name string `json:"name"`
	}

	// AbsentCondition requires the property to be absent.
	AbsentCondition struct {
		Name string `json:"name"`
	}

	// PresentEqualsLiteral requires the property to be present and equal to Value.
	PresentEqualsLiteral struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	}

	// PresentEqualsProperty requires the property to be present and equal to
	// the current value of Other.
	PresentEqualsProperty struct {
		Name  string `json:"name"`
		Other string `json:"other"`
	}

	// PresentNotEqualsLiteral requires the property to be present and
	// different from Value.
	PresentNotEqualsLiteral struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	}

	// PresentNotEqualsProperty requires the property to be present and
	// different from the current value of Other.
	PresentNotEqualsProperty struct {
		Name  string `json:"name"`
		Other string `json:"other"`
	}
)

// Exists returns an Existence dependency on name.
func Exists(name string) Dependency { return Existence{Name: name} }

// Absent returns an AbsentCondition on name.
func Absent(name string) Dependency { return AbsentCondition{Name: name} }

// Equals requires name to be present and equal to value.
func Equals(name string, value any) Dependency {
	return PresentEqualsLiteral{Name: name, Value: value}
}

// EqualsProperty requires name to be present and equal to other's value.
func EqualsProperty(name, other string) Dependency {
	return PresentEqualsProperty{Name: name, Other: other}
}

// NotEquals requires name to be present and different from value.
func NotEquals(name string, value any) Dependency {
	return PresentNotEqualsLiteral{Name: name, Value: value}
}

// NotEqualsProperty requires name to be present and different from other's value.
func NotEqualsProperty(name, other string) Dependency {
	return PresentNotEqualsProperty{Name: name, Other: other}
}

func (d Existence) On() string                { return d.Name }
func (d AbsentCondition) On() string          { return d.Name }
func (d PresentEqualsLiteral) On() string     { return d.Name }
func (d PresentEqualsProperty) On() string    { return d.Name }
func (d PresentNotEqualsLiteral) On() string  { return d.Name }
func (d PresentNotEqualsProperty) On() string { return d.Name }

func (Existence) dependency()                {}
func (AbsentCondition) dependency()          {}
func (PresentEqualsLiteral) dependency()     {}
func (PresentEqualsProperty) dependency()    {}
func (PresentNotEqualsLiteral) dependency()  {}
func (PresentNotEqualsProperty) dependency() {}

// describeDependency renders d for schema descriptions.
func describeDependency(d Dependency) string {
	switch d := d.(type) {
	case Existence:
		return fmt.Sprintf("requires %s", d.Name)
	case AbsentCondition:
		return fmt.Sprintf("requires %s to be absent", d.Name)
	case PresentEqualsLiteral:
		return fmt.Sprintf("requires %s = %v", d.Name, d.Value)
	case PresentEqualsProperty:
		return fmt.Sprintf("requires %s = %s", d.Name, d.Other)
	case PresentNotEqualsLiteral:
		return fmt.Sprintf("requires %s != %v", d.Name, d.Value)
	case PresentNotEqualsProperty:
		return fmt.Sprintf("requires %s != %s", d.Name, d.Other)
	}
	return ""
}

// dependency evaluates d for the owning property and reports whether the
// run must stop.
func (e *evaluator) dependency(owner string, d Dependency) bool {
	switch d := d.(type) {
	case nil:
	case Existence:
		if v, ok := e.lookup(d.Name); !ok || falsy(v) {
			return e.violate(newDependencyViolation(ErrDependencyMissing, owner, d.Name))
		}
	case AbsentCondition:
		if _, ok := e.lookup(d.Name); ok {
			return e.violate(newDependencyViolation(ErrDependencyPresent, owner, d.Name))
		}
	case PresentEqualsLiteral:
		return e.compare(owner, d.Name, true, func(v any) bool { return sameValue(v, d.Value) })
	case PresentEqualsProperty:
		return e.compare(owner, d.Name, true, e.sameAs(d.Other))
	case PresentNotEqualsLiteral:
		return e.compare(owner, d.Name, false, func(v any) bool { return sameValue(v, d.Value) })
	case PresentNotEqualsProperty:
		return e.compare(owner, d.Name, false, e.sameAs(d.Other))
	default:
		panic(fmt.Sprintf("objectvalidation: unknown dependency %T", d))
	}
	return false
}

// compare checks that dep is present, then that equal(dep value) is want.
func (e *evaluator) compare(owner, dep string, want bool, equal func(any) bool) bool {
	v, ok := e.lookup(dep)
	if !ok {
		return e.violate(newDependencyViolation(ErrDependencyMissing, owner, dep))
	}
	if equal(v) != want {
		return e.violate(newDependencyViolation(ErrDependencyValue, owner, dep))
	}
	return false
}

// sameAs compares against the current value of another property. An
// absent property never equals a present value.
func (e *evaluator) sameAs(other string) func(any) bool {
	return func(v any) bool {
		ov, ok := e.lookup(other)
		return ok && sameValue(v, ov)
	}
}

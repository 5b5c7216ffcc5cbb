package objectvalidation

import (
	"math"
	"math/big"
	"reflect"

	"github.com/asaskevich/govalidator"
	json "github.com/goccy/go-json"
)

var float64Type = reflect.TypeOf(float64(0))

// toNumber converts any Go numeric value or json.Number to float64.
// Strings, including named string types, are never numbers.
func toNumber(value any) (float64, bool) {
	switch n := value.(type) {
	case nil, bool, string:
		return 0, false
	case json.Number:
		f, err := govalidator.ToFloat(n.String())
		return f, err == nil
	}
	if f, err := govalidator.ToFloat(value); err == nil {
		return f, true
	}
	// Named numeric kinds are converted to their float64 value.
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rv.Convert(float64Type).Float(), true
	}
	return 0, false
}

// exactNumber returns the exact value of an integer or an integer
// json.Number literal. Floats and decimal literals report false.
func exactNumber(value any) (*big.Int, bool) {
	if n, ok := value.(json.Number); ok {
		return new(big.Int).SetString(n.String(), 10)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), true
	}
	return nil, false
}

// sameNumber compares exactly when both sides allow it, so identifiers
// beyond 2^53 stay distinct.
func sameNumber(a, b any) bool {
	if x, ok := exactNumber(a); ok {
		if y, ok := exactNumber(b); ok {
			return x.Cmp(y) == 0
		}
	}
	x, _ := toNumber(a)
	y, _ := toNumber(b)
	return x == y
}

// sameValue is strict equality over decoded values: numbers compare by
// value whatever their representation, null only equals null.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	_, an := toNumber(a)
	_, bn := toNumber(b)
	switch {
	case an && bn:
		return sameNumber(a, b)
	case an || bn:
		return false
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch {
	case ra.Kind() == reflect.String && rb.Kind() == reflect.String:
		return ra.String() == rb.String()
	case ra.Kind() == reflect.Bool && rb.Kind() == reflect.Bool:
		return ra.Bool() == rb.Bool()
	}
	return reflect.DeepEqual(a, b)
}

// falsy reports whether value counts as missing for an existence
// dependency. Zero is a legitimate value and is not falsy.
func falsy(value any) bool {
	if value == nil {
		return true
	}
	if f, ok := toNumber(value); ok {
		return math.IsNaN(f)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	}
	return false
}

func contains(values []any, value any) bool {
	for _, v := range values {
		if sameValue(v, value) {
			return true
		}
	}
	return false
}

package objectvalidation_test

import (
	"errors"
	"fmt"

	v "github.com/Gobd/objectvalidation"
)

var user = v.Schema{
	v.Prop("id", v.Forbidden),
	v.Prop("name", v.IsString, v.AlwaysPresent),
	v.Prop("counter", v.IsNumber, v.Nullable),
}

func ExampleValidate() {
	obj := v.Object{"name": "Ada", "counter": 3}
	if _, err := v.Validate(obj, user, v.Options{}); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("valid")
	// Output: valid
}

func ExampleValidate_collect() {
	c := &v.Collector{}
	_, err := v.Validate(v.Object{"id": 7, "name": "", "counter": -1}, user, v.Options{Reporter: c})
	fmt.Println(errors.Is(err, v.ErrInvalid))
	for _, msg := range c.Violations.Messages() {
		fmt.Println(msg)
	}
	// Output:
	// true
	// Property "id" cannot be present.
	// Property "name" is empty.
	// Property "counter" cannot be a negative number.
}

func ExampleValidate_failFast() {
	_, err := v.Validate(v.Object{"id": 7, "name": ""}, user, v.Options{FailFast: true})
	fmt.Println(err)
	// Output: Property "id" cannot be present.
}

func ExampleUnmarshalAndValidate() {
	_, err := v.UnmarshalAndValidate([]byte(`{"name": null}`), user, v.Options{Reporter: v.Discard})
	fmt.Println(err)
	// Output: Property "name" is required and cannot be null.
}

func ExampleParseSchema() {
	s, err := v.ParseSchema([]byte(`
one:
  type: number
  depends:
    - two:
        state: absent
`))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(v.Check(v.Object{"one": 1}, s, v.Options{}))
	_, err = v.Validate(v.Object{"one": 1, "two": 2}, s, v.Options{FailFast: true})
	fmt.Println(err)
	// Output:
	// true
	// Property "two" should not be present for "one" to be valid.
}

func ExampleSchema_Check() {
	s := v.Schema{v.Prop("name", v.AlwaysPresent, v.Nullable)}
	fmt.Println(s.Check())
	// Output: invalid schema: name: (allowNull: allowNull: true contradicts alwaysPresent.).
}

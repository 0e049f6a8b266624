package domain

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// validate checks the `validate` tags on input structs.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// A price only counts as present when it is truthy, so `required`
	// sees an absent, zero or malformed price as missing.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if p, ok := field.Interface().(Price); ok && p.Truthy() {
			return p.Value
		}
		return nil
	}, Price{})

	return v
}

package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "shopapi/internal/errors"
)

// Validator validates request structs and reports rule violations as
// per-field message lists rather than a single opaque error string.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator that names fields after their json tags.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator. Rule violations come back as a
// *errors.ValidationError so the handler layer can render a 422 body.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	ve := &apperrors.ValidationError{}
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), messageFor(fe))
	}
	return ve
}

// messageFor renders a human-readable message for a single failed rule.
func messageFor(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "min":
		if isNumericKind(fe.Kind()) {
			return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "max":
		if isNumericKind(fe.Kind()) {
			return fmt.Sprintf("The %s field must not be greater than %s.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field confirmation does not match.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

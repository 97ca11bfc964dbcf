package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var salaryPattern = regexp.MustCompile(`^\$?\d{1,3}(,\d{3})*(\.\d{2})?$`)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// Report fields under their wire names so error maps line up with the
	// JSON/form payload.
	val.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	_ = val.RegisterValidation("salary", func(fl validator.FieldLevel) bool {
		return salaryPattern.MatchString(fl.Field().String())
	})
	return val
}

// Struct validates a tagged request struct and returns per-field messages,
// or nil when the value is valid.
func Struct(s any) map[string][]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors := make(map[string][]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		fieldErrors["_"] = []string{"invalid payload"}
		return fieldErrors
	}
	for _, fe := range ve {
		field := fe.Field()
		fieldErrors[field] = append(fieldErrors[field], messageFor(fe))
	}
	return fieldErrors
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "eqfield":
		return fmt.Sprintf("The %s confirmation does not match.", strings.TrimSuffix(field, "_confirmation"))
	case "salary":
		return fmt.Sprintf("The %s format is invalid.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

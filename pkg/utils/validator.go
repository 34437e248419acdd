package utils

import (
	"fmt"
	"reflect"
	"strings"

	"review-api/internal/data/entity"
	"review-api/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return entity.UsernameProblem(fl.Field().String()) == ""
	})
	v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return entity.UserRole(fl.Field().String()).Valid()
	})
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	return v
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// Validate runs struct validation and wraps failures as a validation error.
func Validate(op string, data interface{}) error {
	if errs := ValidateStruct(data); len(errs) > 0 {
		return apperr.Validation(op, "validation failed", errs)
	}
	return nil
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if isNumber(err.Kind()) {
			return fmt.Sprintf("Minimum value is %s", err.Param())
		}
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		if isNumber(err.Kind()) {
			return fmt.Sprintf("Maximum value is %s", err.Param())
		}
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "username":
		var value string
		switch v := err.Value().(type) {
		case string:
			value = v
		case *string:
			if v != nil {
				value = *v
			}
		}
		if msg := entity.UsernameProblem(value); msg != "" {
			return msg
		}
		return "Invalid username"
	case "role":
		return "Must be one of: user, moderator, admin"
	case "slug":
		return "Only letters, digits, hyphens and underscores are allowed"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// formats validation errors map into single string
func FormatValidationErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/healthreg/errors"
)

// sensuEmailPattern is the address format Sensu notification fields accept.
var sensuEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+$`)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their declaration key
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" || name == "" {
				return toSnakeCase(fld.Name)
			}
			return name
		})

		_ = validate.RegisterValidation("sensu_email", func(fl validator.FieldLevel) bool {
			return sensuEmailPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// ValidateStruct validates a struct using struct tags and attributes any
// failure to checkID.
func ValidateStruct(checkID string, s any) error {
	v := getValidator()
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation(checkID, "validation failed").WithCause(err)
	}

	collector := New(checkID)
	for _, e := range validationErrors {
		collector.AddError(e.Field(), "Health check '"+checkID+"' property '"+e.Field()+"' "+formatValidationError(e))
	}
	return collector.Validate()
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "sensu_email":
		return fmt.Sprintf("must be a valid email address, found '%v'", e.Value())
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32) // lowercase
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

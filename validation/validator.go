package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kbukum/healthreg/errors"
	"github.com/kbukum/healthreg/healthcheck"
)

// Validator collects validation errors for one check.
type Validator struct {
	checkID string
	errors  []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator for the check with the given id.
func New(checkID string) *Validator {
	return &Validator{
		checkID: checkID,
		errors:  make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = e.Message
	}

	appErr := errors.Validation(v.checkID, strings.Join(messages, "; "))
	appErr.WithDetail("fields", v.errors)
	return appErr
}

// Required checks that every field is declared.
func (v *Validator) Required(decl healthcheck.Declaration, fields ...string) *Validator {
	for _, f := range fields {
		if !decl.Has(f) {
			v.AddError(f, errors.MissingField(v.checkID, f).Message)
		}
	}
	return v
}

// Pattern checks if a string matches a compiled pattern.
func (v *Validator) Pattern(field, value string, pattern *regexp.Regexp) *Validator {
	if !pattern.MatchString(value) {
		v.AddError(field, fmt.Sprintf("Health check %s '%s' doesn't match required expression /%s/", field, value, pattern))
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("Failed to register health check '%s', only %s check types are supported, found '%s'",
		v.checkID, quoteJoin(allowed), value))
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, s := range values {
		quoted[i] = "'" + s + "'"
	}
	if len(quoted) == 2 {
		return quoted[0] + " and " + quoted[1]
	}
	return strings.Join(quoted, ", ")
}

package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors per error kind ---

// DefinitionSource creates an error for a definition file or appspec entry
// that does not hold a mapping of check definitions.
func DefinitionSource(source, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeDefinitionSource,
		Message: fmt.Sprintf("%s doesn't contain valid definition of healthchecks: %s", source, reason),
		Details: map[string]any{"source": source},
	}
}

// Validation creates an error for a single check that failed validation.
// An empty checkID marks a set-level violation.
func Validation(checkID, reason string) *AppError {
	e := &AppError{Code: ErrCodeValidation, Message: reason}
	if checkID != "" {
		e.Details = map[string]any{"check_id": checkID}
	}
	return e
}

// MissingField creates a validation error for a required check field.
func MissingField(checkID, field string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("Health check '%s' is missing field '%s'", checkID, field),
		Details: map[string]any{"check_id": checkID, "field": field},
	}
}

// ScriptNotFound creates an error for a script that does not exist at path.
func ScriptNotFound(path string) *AppError {
	return &AppError{
		Code:    ErrCodeScriptNotFound,
		Message: fmt.Sprintf("Couldn't find health check script in package with path: %s", path),
		Details: map[string]any{"path": path},
	}
}

// PluginNotFound creates an error for an agent-side script missing from every
// search path.
func PluginNotFound(script string, searched []string) *AppError {
	return &AppError{
		Code:    ErrCodeScriptNotFound,
		Message: fmt.Sprintf("Couldn't find Sensu plugin script: %s\nPaths searched: %v", script, searched),
		Details: map[string]any{"script": script, "search_paths": searched},
	}
}

// Registration creates an error for a check the backend failed to register.
func Registration(backend, checkID string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeRegistration,
		Message: fmt.Sprintf("Failed to register %s health check '%s'", backend, checkID),
		Details: map[string]any{"backend": backend, "check_id": checkID},
		Cause:   cause,
	}
}

// Deregistration creates an error for a check the backend failed to remove.
func Deregistration(backend, checkID string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeRegistration,
		Message: fmt.Sprintf("Failed to deregister %s health check '%s'", backend, checkID),
		Details: map[string]any{"backend": backend, "check_id": checkID},
		Cause:   cause,
	}
}

// Config creates an error for invalid runtime configuration.
func Config(reason string) *AppError {
	return &AppError{Code: ErrCodeConfig, Message: reason}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Definition errors
const (
	// ErrCodeDefinitionSource indicates a malformed check-definition source.
	ErrCodeDefinitionSource ErrorCode = "DEFINITION_SOURCE_INVALID"
	// ErrCodeValidation indicates a check definition failed validation.
	ErrCodeValidation ErrorCode = "VALIDATION_FAILED"
	// ErrCodeScriptNotFound indicates a check script could not be resolved.
	ErrCodeScriptNotFound ErrorCode = "SCRIPT_NOT_FOUND"
)

// Backend errors
const (
	// ErrCodeRegistration indicates a backend rejected a registration or removal.
	ErrCodeRegistration ErrorCode = "REGISTRATION_FAILED"
)

// Setup errors
const (
	// ErrCodeConfig indicates invalid runtime configuration.
	ErrCodeConfig ErrorCode = "CONFIG_INVALID"
)

var abortsBatch = map[ErrorCode]bool{
	ErrCodeDefinitionSource: true,
	ErrCodeValidation:       true,
	ErrCodeScriptNotFound:   true,
}

// IsPreflightCode reports whether the code marks a problem with the check
// definitions themselves, raised before any backend submission takes place.
func IsPreflightCode(code ErrorCode) bool {
	return abortsBatch[code]
}

package cli

import (
	"errors"
	"fmt"

	apperrors "github.com/kbukum/healthreg/errors"
)

// Process exit codes.
const (
	ExitOK           = 0
	ExitGeneric      = 1
	ExitValidation   = 2
	ExitRegistration = 3
)

// ExitError is an error that carries a specific process exit code.
// Cobra's RunE returns this to signal the desired exit code to main.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitError creates a new ExitError with the given code and formatted message.
func exitError(code int, format string, args ...any) *ExitError {
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// asExitError maps err to the exit code of its kind.
func asExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	code := ExitGeneric
	if appErr, ok := apperrors.AsAppError(err); ok {
		switch {
		case apperrors.IsPreflightCode(appErr.Code):
			code = ExitValidation
		case appErr.Code == apperrors.ErrCodeRegistration:
			code = ExitRegistration
		}
	}
	return &ExitError{Code: code, Message: err.Error(), Err: err}
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return asExitError(err).Code
}

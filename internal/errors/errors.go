// Package errors provides sentinel errors, detailed error formatting and
// exit codes for the evb CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates an invalid registry, config file or flag value.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a file, module or theme was not found.
	ErrNotFound = errors.New("not found")
)

// Exit codes returned by the evb binary.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates registry or config validation failed.
	ExitValidationError = 2

	// ExitNotFound indicates a file or module was not found.
	ExitNotFound = 5
)

// DetailError is an error with enough structure to print a useful report:
// what failed, where, and what to try next.
type DetailError struct {
	// Type is the error category, e.g. "validation failed".
	Type string
	// Message describes the failure.
	Message string
	// Location is the file the error refers to.
	Location string
	// Field is the offending key, e.g. "modules[3].dependencies".
	Field string
	// Details are listed one per line under the message.
	Details []string
	// Hint suggests a fix.
	Hint string
	// Cause is the underlying error, usually a sentinel.
	Cause error
}

func (e *DetailError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", e.Type)
	if e.Location != "" {
		fmt.Fprintf(&b, "  Location: %s\n", e.Location)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "  Field: %s\n", e.Field)
	}
	fmt.Fprintf(&b, "\n  %s\n", e.Message)
	for _, d := range e.Details {
		fmt.Fprintf(&b, "    - %s\n", d)
	}
	if e.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s\n", e.Hint)
	}
	return b.String()
}

func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// Wrap annotates a sentinel with a message; errors.Is still matches the
// sentinel.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}

// ExitError wraps an error with the process exit code it should produce.
type ExitError struct {
	// Code is the process exit code.
	Code int
	// Err is the underlying error.
	Err error
	// Printed is set when the command layer already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess              = 0   // Indicates successful execution.
	ExitErrorGeneric         = 1   // Indicates a generic error, such as a failed write.
	ExitErrorUsage           = 1   // Indicates a wrong argument count or an unknown flag.
	ExitErrorInvalidArgument = 2   // Indicates that <n> is not a valid 32-bit unsigned integer.
	ExitErrorCanceled        = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ArgumentCountError is returned when the command line does not carry exactly
// one positional argument.
type ArgumentCountError struct {
	// Got is the number of positional arguments that were supplied.
	Got int
}

// Error returns a message describing the argument count mismatch.
//
// Returns:
//   - string: The error message string.
func (e ArgumentCountError) Error() string {
	return fmt.Sprintf("expected exactly 1 argument, got %d", e.Got)
}

// InvalidArgumentError is returned when the positional argument is not a
// base-10 integer in the range [0, 2^32).
type InvalidArgumentError struct {
	// Value is the raw text that failed to parse.
	Value string
	// Cause is the underlying parse error, if any.
	Cause error
}

// Error returns a message naming the rejected value.
//
// Returns:
//   - string: The error message string.
func (e InvalidArgumentError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("invalid argument %q", e.Value)
	}
	return fmt.Sprintf("invalid argument %q: %v", e.Value, e.Cause)
}

// Unwrap returns the underlying parse error.
func (e InvalidArgumentError) Unwrap() error { return e.Cause }

// ConfigError represents a user configuration error, such as an invalid flag
// value. It indicates that the application cannot proceed due to incorrect
// user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status.
//
// Parameters:
//   - err: The error to map; nil maps to ExitSuccess.
//
// Returns:
//   - int: The exit status for the error.
func ExitCode(err error) int {
	var (
		invalid  InvalidArgumentError
		count    ArgumentCountError
		cfgError ConfigError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &invalid):
		return ExitErrorInvalidArgument
	case errors.As(err, &count), errors.As(err, &cfgError):
		return ExitErrorUsage
	case IsContextError(err):
		return ExitErrorCanceled
	default:
		return ExitErrorGeneric
	}
}

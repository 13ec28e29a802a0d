package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorSource   = 2   // Indicates the counter source could not be opened.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrSourceUnreadable reports that an OS counter interface is missing or
// returned data that could not be parsed. Every SourceError matches it
// through errors.Is.
var ErrSourceUnreadable = errors.New("counter source unreadable")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
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

// SourceError reports a failed read of an OS counter source. Source names the
// backend ("gopsutil", "procfs"), Op the counter family ("cpu", "memory").
type SourceError struct {
	Source string
	Op     string
	Cause  error
}

// Error returns a formatted message describing the failed read.
func (e SourceError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s %s counters: %s", e.Source, e.Op, ErrSourceUnreadable)
	}
	return fmt.Sprintf("%s %s counters: %s: %v", e.Source, e.Op, ErrSourceUnreadable, e.Cause)
}

// Unwrap returns the underlying cause.
func (e SourceError) Unwrap() error { return e.Cause }

// Is makes every SourceError match ErrSourceUnreadable.
func (e SourceError) Is(target error) bool { return target == ErrSourceUnreadable }

// NewSourceError builds a SourceError for the given backend and counter family.
func NewSourceError(source, op string, cause error) error {
	return SourceError{Source: source, Op: op, Cause: cause}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
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

// IsSourceError reports whether err was caused by an unreadable counter source.
func IsSourceError(err error) bool {
	return errors.Is(err, ErrSourceUnreadable)
}

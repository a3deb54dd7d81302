// Package apperrors provides structured shell errors classified by severity.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for classification via errors.Is().
var (
	// ErrUser marks mistakes in the user's input (bad job id, malformed
	// command). The read-eval loop reports them and continues.
	ErrUser = errors.New("user error")

	// ErrResource marks failed operations on OS resources (job table full,
	// wait/kill/terminal syscall failures). The operation is aborted but the
	// shell keeps running.
	ErrResource = errors.New("resource error")

	// ErrFatal marks conditions under which job control cannot be guaranteed
	// (invalid configuration, input setup failure). The shell exits non-zero.
	ErrFatal = errors.New("fatal error")
)

// Error carries a classified shell error with context.
type Error struct {
	Sentinel error  // Wrapped sentinel for errors.Is() classification
	Message  string // Human-readable message, printed verbatim for user errors
	Op       string // Operation that failed (e.g. "terminal.grant")
	Cause    error  // Underlying error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the sentinel error for errors.Is() classification.
func (e *Error) Unwrap() error {
	return e.Sentinel
}

// User creates a user error whose message is printed exactly as given.
func User(message string) error {
	return &Error{
		Sentinel: ErrUser,
		Message:  message,
	}
}

// Resource creates a resource error for a failed operation.
func Resource(op string, cause error) error {
	msg := op
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", op, cause)
	}
	return &Error{
		Sentinel: ErrResource,
		Message:  msg,
		Op:       op,
		Cause:    cause,
	}
}

// Fatal creates a fatal error wrapping an underlying cause.
func Fatal(op string, cause error) error {
	msg := op
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", op, cause)
	}
	return &Error{
		Sentinel: ErrFatal,
		Message:  msg,
		Op:       op,
		Cause:    cause,
	}
}

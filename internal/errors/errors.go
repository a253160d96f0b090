// Package errors provides structured error types and exit codes for outfitter.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (install step failed, etc.)
	ExitConfigError      = 2 // Formula/task document error (validation, unresolved task, etc.)
	ExitEnvironmentError = 3 // Environment error (lock held, missing package manager, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindValidation
	KindUnresolved
	KindVersionCheck
	KindNotFound
	KindEnvironment
)

// OutfitterError is the base error type for outfitter.
type OutfitterError struct {
	Kind    ErrorKind
	Message string
	Task    string // Task id if applicable
	Field   string // Document field path if applicable (e.g. "tasks[2].category")
	Cause   error  // Underlying error
}

func (e *OutfitterError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Task != "" {
		return fmt.Sprintf("[%s] %s", e.Task, e.Message)
	}
	return e.Message
}

func (e *OutfitterError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *OutfitterError) ExitCode() int {
	switch e.Kind {
	case KindValidation, KindUnresolved, KindNotFound:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *OutfitterError {
	return &OutfitterError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *OutfitterError {
	return New(fmt.Sprintf(format, args...))
}

// Validation creates a new document validation error for a field.
func Validation(field, message string) *OutfitterError {
	return &OutfitterError{
		Kind:    KindValidation,
		Field:   field,
		Message: message,
	}
}

// Validationf creates a new document validation error with formatting.
func Validationf(field, format string, args ...interface{}) *OutfitterError {
	return Validation(field, fmt.Sprintf(format, args...))
}

// Environment creates a new environment error.
func Environment(message string) *OutfitterError {
	return &OutfitterError{
		Kind:    KindEnvironment,
		Message: message,
	}
}

// Environmentf creates a new environment error with formatting.
func Environmentf(format string, args ...interface{}) *OutfitterError {
	return Environment(fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *OutfitterError {
	return &OutfitterError{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// TaskError creates a runtime error attributed to a specific task.
func TaskError(task, message string) *OutfitterError {
	return &OutfitterError{
		Kind:    KindRuntime,
		Task:    task,
		Message: message,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *OutfitterError {
	return &OutfitterError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// exitCoder is implemented by error types that carry their own exit code.
// Domain error types outside this package (e.g. resolver.UnresolvedTaskError)
// implement it so GetExitCode does not need to know about them.
type exitCoder interface {
	ExitCode() int
}

// GetExitCode returns the exit code for an error, unwrapping as needed.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ec exitCoder
	if stderrors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitRuntimeError
}

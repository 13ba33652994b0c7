// Package errors provides structured error types for trackgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the layout engine, CLI and HTTP surface
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes fall into two groups. Contract violations (DUPLICATE_KEY,
// KEY_NOT_FOUND, EVENT_NOT_FOUND, CONTRACT_VIOLATION) are programmer or
// configuration errors: they are never retried and never swallowed.
// UNDETERMINED_PLACEMENT marks a train path that is locally horizontal, so
// callers can choose between skipping one annotation and rejecting the path.
// The remaining codes describe invalid user input.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeKeyNotFound, "no segment for %v", key)
//	if errors.Is(err, errors.ErrCodeKeyNotFound) {
//	    // Handle missing registration
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidTimetable, origErr, "train %s", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Contract violations
	ErrCodeDuplicateKey          Code = "DUPLICATE_KEY"
	ErrCodeKeyNotFound           Code = "KEY_NOT_FOUND"
	ErrCodeEventNotFound         Code = "EVENT_NOT_FOUND"
	ErrCodeContractViolation     Code = "CONTRACT_VIOLATION"
	ErrCodeUndeterminedPlacement Code = "UNDETERMINED_PLACEMENT"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidTimetable Code = "INVALID_TIMETABLE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsContractViolation reports whether err signals a programmer or
// configuration error rather than bad user input.
func IsContractViolation(err error) bool {
	switch GetCode(err) {
	case ErrCodeDuplicateKey, ErrCodeKeyNotFound, ErrCodeEventNotFound, ErrCodeContractViolation:
		return true
	}
	return false
}

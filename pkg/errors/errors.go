// Package errors defines the coded error taxonomy shared by projman's
// registries, the duplicator and the operation facade.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Persistence errors
	ErrParse      ErrorCode = "PARSE"
	ErrWrite      ErrorCode = "WRITE"
	ErrFileAccess ErrorCode = "FILE_ACCESS"

	// Registry errors
	ErrDuplicateName ErrorCode = "DUPLICATE_NAME"

	// Operation preconditions
	ErrNoWorkspace    ErrorCode = "NO_WORKSPACE"
	ErrNoTargetFolder ErrorCode = "NO_TARGET_FOLDER"

	// Duplicator errors
	ErrSelfContainment ErrorCode = "SELF_CONTAINMENT"
	ErrAlreadyExists   ErrorCode = "ALREADY_EXISTS"
	ErrCopy            ErrorCode = "COPY"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"
)

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var codedErr *Error
	if errors.As(err, &codedErr) {
		return codedErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an *Error
func GetErrorCode(err error) ErrorCode {
	var codedErr *Error
	if errors.As(err, &codedErr) {
		return codedErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an *Error
func GetErrorDetails(err error) map[string]interface{} {
	var codedErr *Error
	if errors.As(err, &codedErr) {
		return codedErr.Details
	}
	return nil
}

// UserMessage renders err for display to the user: the outermost coded
// message, followed by the underlying cause for I/O failures.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var codedErr *Error
	if !errors.As(err, &codedErr) {
		return err.Error()
	}
	switch codedErr.Code {
	case ErrCopy, ErrWrite, ErrFileAccess, ErrConfigLoad, ErrConfigWrite, ErrInternal:
		if codedErr.Wrapped != nil {
			return fmt.Sprintf("%s: %v", codedErr.Message, codedErr.Wrapped)
		}
	}
	return codedErr.Message
}

// Package errors provides structured error types for mailgrid.
//
// The conversion core never fails: any well-typed document produces HTML.
// Errors come from the edges of the system (reading documents, exporting
// assets, writing files, persisting preferences) and carry a [Code] so the
// CLI can tell a user mistake from a broken collaborator.
//
// # Error Codes
//
//   - INVALID_*: input validation failures
//   - FILE_NOT_FOUND, UNSAVED_DOCUMENT: missing prerequisites
//   - EXPORT_FAILED: the asset exporter reported failure
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidAssetID, "asset id %q contains a path separator", id)
//	if errors.Is(err, errors.ErrCodeInvalidAssetID) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeExportFailed, origErr, "sketchtool exited")
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidAssetID  Code = "INVALID_ASSET_ID"
	ErrCodeInvalidOption   Code = "INVALID_OPTION"

	// Missing prerequisites
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"
	ErrCodeUnsavedDocument Code = "UNSAVED_DOCUMENT"

	// Collaborator failures
	ErrCodeExportFailed Code = "EXPORT_FAILED"

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
// Only the outermost *Error in the chain is consulted.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
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

// IsUserError reports whether err was caused by the input rather than by
// the environment: validation failures, missing files and unsaved
// documents. The CLI exits with status 2 for these.
func IsUserError(err error) bool {
	switch code := GetCode(err); code {
	case ErrCodeFileNotFound, ErrCodeUnsavedDocument:
		return true
	default:
		return strings.HasPrefix(string(code), "INVALID_")
	}
}

// Package errors provides structured error types for cratescope.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the core packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: malformed input (manifests, workspace roots)
//   - *_NOT_FOUND: missing files or entities
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidManifest, "missing package name in %s", path)
//	if errors.Is(err, errors.ErrCodeInvalidManifest) {
//	    // Handle manifest error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeManifestNotFound, origErr, "reading %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Manifest errors: a single manifest file is unusable.
	ErrCodeInvalidManifest  Code = "INVALID_MANIFEST"
	ErrCodeManifestNotFound Code = "MANIFEST_NOT_FOUND"

	// Workspace errors: the workspace root itself is unusable.
	ErrCodeInvalidWorkspace  Code = "INVALID_WORKSPACE"
	ErrCodeWorkspaceNotFound Code = "WORKSPACE_NOT_FOUND"
	ErrCodeDuplicatePackage  Code = "DUPLICATE_PACKAGE"

	// Soft resolution errors: recorded on results, never fatal.
	ErrCodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"

	// Lookup errors
	ErrCodePackageNotFound    Code = "PACKAGE_NOT_FOUND"
	ErrCodeDependencyNotFound Code = "DEPENDENCY_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsManifest reports whether err is a manifest-level error, i.e. one that
// concerns a single manifest file rather than the workspace as a whole.
func IsManifest(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidManifest, ErrCodeManifestNotFound:
		return true
	}
	return false
}

// IsWorkspace reports whether err concerns the workspace root.
func IsWorkspace(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidWorkspace, ErrCodeWorkspaceNotFound, ErrCodeDuplicatePackage:
		return true
	}
	return false
}

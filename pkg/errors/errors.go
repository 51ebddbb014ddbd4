// Package errors provides structured error types for the arbor command line.
//
// The engine packages (graph, forest) report failures with sentinel errors
// wrapped by fmt.Errorf. This package sits at the boundary: it gives those
// failures a machine-readable code, a user-facing message and an exit status.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Missing files
//   - NOT_FOREST, NO_ISOMORPHISM: Domain outcomes
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "challenge must be hex: %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "cannot parse %s", path)
//
//	// Translate engine sentinels
//	err = errors.Classify(err)
package errors

import (
	"errors"
	"fmt"

	"github.com/matzehuels/arbor/pkg/forest"
	"github.com/matzehuels/arbor/pkg/graph"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidMapping Code = "INVALID_MAPPING"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeVertexNotFound Code = "VERTEX_NOT_FOUND"

	// Domain outcomes
	ErrCodeNotForest     Code = "NOT_FOREST"
	ErrCodeNoIsomorphism Code = "NO_ISOMORPHISM"
	ErrCodeProofRejected Code = "PROOF_REJECTED"

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

// Classify attaches a code to an engine error. Errors that already carry a
// code and nil are returned unchanged; unknown errors become INTERNAL_ERROR.
func Classify(err error) error {
	if err == nil || GetCode(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, forest.ErrNotForest), errors.Is(err, forest.ErrNotTree):
		return Wrap(ErrCodeNotForest, err, "input is not a forest")
	case errors.Is(err, graph.ErrInvalidMapping):
		return Wrap(ErrCodeInvalidMapping, err, "mapping is not usable")
	case errors.Is(err, graph.ErrVertexNotFound), errors.Is(err, graph.ErrEdgeNotFound):
		return Wrap(ErrCodeVertexNotFound, err, "graph references an unknown vertex")
	default:
		return Wrap(ErrCodeInternal, err, "unexpected failure")
	}
}

// ExitCode returns the process exit status for err: 0 for nil, 1 when two
// inputs are simply not isomorphic or a proof is rejected, 2 for bad input
// and 3 for anything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCode(err) {
	case ErrCodeNoIsomorphism, ErrCodeProofRejected:
		return 1
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidPath,
		ErrCodeInvalidMapping, ErrCodeInvalidConfig, ErrCodeFileNotFound,
		ErrCodeVertexNotFound, ErrCodeNotForest:
		return 2
	default:
		return 3
	}
}

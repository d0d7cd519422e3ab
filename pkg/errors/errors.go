// Package errors provides structured error types for Rackula.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the editor, CLI and TUI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages for rejected placements
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad slot, height, face, ...)
//   - *_NOT_FOUND: Referenced instance, type or file does not exist
//   - OUT_OF_BOUNDS, COLLISION, NO_VALID_SLOT: Rejected placements
//   - INTERNAL_*: Unexpected internal errors
//
// Rejected placements are expected outcomes, not faults: callers surface them
// as user feedback. A collision carries the names of the blocking devices in a
// [CollisionError].
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidSlot, "slot %d is below the first slot", slot)
//	if errors.Is(err, errors.ErrCodeInvalidSlot) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
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
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidSlot       Code = "INVALID_SLOT"
	ErrCodeInvalidHeight     Code = "INVALID_HEIGHT"
	ErrCodeInvalidFace       Code = "INVALID_FACE"
	ErrCodeInvalidWidth      Code = "INVALID_WIDTH"
	ErrCodeInvalidDeviceType Code = "INVALID_DEVICE_TYPE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeDuplicate         Code = "DUPLICATE"

	// Rejected placements
	ErrCodeOutOfBounds Code = "OUT_OF_BOUNDS"
	ErrCodeCollision   Code = "COLLISION"
	ErrCodeNoValidSlot Code = "NO_VALID_SLOT"

	// Resource not found errors
	ErrCodeNotFound           Code = "NOT_FOUND"
	ErrCodeDeviceNotFound     Code = "DEVICE_NOT_FOUND"
	ErrCodeDeviceTypeNotFound Code = "DEVICE_TYPE_NOT_FOUND"
	ErrCodeFileNotFound       Code = "FILE_NOT_FOUND"

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
// It unwraps the error chain looking for an *Error or *CollisionError with a
// matching code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var ce *CollisionError
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For coded errors, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var ce *CollisionError
	if errors.As(err, &ce) {
		return ce.message()
	}
	return err.Error()
}

// CollisionError reports a placement rejected because other devices already
// occupy the requested slots on a colliding face.
type CollisionError struct {
	Slot     int      // Requested bottom slot
	Face     string   // Requested mounting face
	Blockers []string // Display names of the blocking devices, in rack order
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCodeCollision, e.message())
}

// Code returns the error code for this error type.
func (e *CollisionError) Code() Code {
	return ErrCodeCollision
}

func (e *CollisionError) message() string {
	if len(e.Blockers) == 0 {
		return fmt.Sprintf("slot %d (%s) is blocked", e.Slot, e.Face)
	}
	return fmt.Sprintf("slot %d (%s) is blocked by %s", e.Slot, e.Face, strings.Join(e.Blockers, ", "))
}

package core

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrFormatCode     = "FORMAT_ERROR"
	ErrSchemaCode     = "SCHEMA_ERROR"
	ErrNotFoundCode   = "NOT_FOUND"
	ErrStorageCode    = "STORAGE_ERROR"
	ErrProcessingCode = "PROCESSING_ERROR"
)

// Sentinel errors for errors.Is matching by code. Processing errors are
// the fallback class and are matched with CodeOf.
var (
	ErrFormat   = &Error{Code: ErrFormatCode, Message: "unsupported file format"}
	ErrSchema   = &Error{Code: ErrSchemaCode, Message: "required columns missing"}
	ErrNotFound = &Error{Code: ErrNotFoundCode, Message: "object not found"}
	ErrStorage  = &Error{Code: ErrStorageCode, Message: "storage operation failed"}
)

// Error is the error type returned across the conversion pipeline.
// Two errors are considered equal by errors.Is when their codes match.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithDetail returns the error after attaching a detail value.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// NewErrorf creates a new Error with the given code and formatted message
func NewErrorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError wraps an existing error under the given code
func WrapError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// AsProcessingError returns err unchanged when it already carries a code,
// otherwise it wraps it as a PROCESSING_ERROR.
func AsProcessingError(message string, err error) error {
	if err == nil {
		return nil
	}
	var coded *Error
	if errors.As(err, &coded) {
		return err
	}
	return WrapError(ErrProcessingCode, message, err)
}

// CodeOf extracts the error code from err, or "" when err carries none.
func CodeOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

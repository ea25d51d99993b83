// Package halerrors carries request-scoped errors with an HTTP status, a
// human readable message and an optional per-field validation breakdown.
package halerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard error functions
var (
	Is     = errors.Is
	As     = errors.As
	Join   = errors.Join
	Unwrap = errors.Unwrap
)

// FieldError records why a single payload field failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Message)
}

func NewFieldError(field, message string) FieldError {
	return FieldError{Field: field, Message: message}
}

// Status builds an error carrying the given HTTP status code.
func Status(code int) *Error {
	return &Error{status: code, Message: http.StatusText(code)}
}

var (
	Invalid       = Status(http.StatusBadRequest)
	NotFound      = Status(http.StatusNotFound)
	Conflict      = Status(http.StatusConflict)
	Unprocessable = Status(http.StatusUnprocessableEntity)
	Internal      = Status(http.StatusInternalServerError)
)

// Error is the error type handlers hand back to the response layer.
type Error struct {
	Message string       `json:"message"`
	Fields  []FieldError `json:"errors,omitempty"`

	status int
	cause  error
}

var _ error = (*Error)(nil)

func New(message string) *Error {
	return &Error{status: http.StatusInternalServerError, Message: message}
}

// Error implements error
func (e *Error) Error() string {
	str := e.Message
	if e.cause != nil {
		str += fmt.Sprintf(" (%s)", e.cause)
	}
	return str
}

// StatusCode returns the HTTP status the error maps to.
func (e *Error) StatusCode() int {
	if e.status == 0 {
		return http.StatusInternalServerError
	}
	return e.status
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Wrap returns a copy of the error with its cause set.
func (e *Error) Wrap(cause error) *Error {
	err := *e
	err.cause = cause
	return &err
}

// Explain returns a copy of the error with the given message.
func (e *Error) Explain(message string, args ...any) *Error {
	err := *e
	err.Message = fmt.Sprintf(message, args...)
	return &err
}

// WithField returns a copy of the error with one more field error appended.
func (e *Error) WithField(field, message string) *Error {
	err := *e
	err.Fields = append(err.Fields, NewFieldError(field, message))
	return &err
}

// WithFields returns a copy of the error with fields replaced.
func (e *Error) WithFields(fields []FieldError) *Error {
	err := *e
	err.Fields = fields
	return &err
}

// FieldMap collapses the field errors into a field name to message mapping.
// The first message recorded for a field wins.
func (e *Error) FieldMap() map[string]string {
	if len(e.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, seen := out[f.Field]; !seen {
			out[f.Field] = f.Message
		}
	}
	return out
}

// Is implements the needed interface for errors.Is.
// Errors compare by status code.
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if other, ok := target.(*Error); ok {
		return other.status == e.status
	}
	if e.cause != nil {
		return Is(e.cause, target)
	}
	return false
}

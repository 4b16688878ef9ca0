package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an operational error that already knows which HTTP status it maps
// to. Anything else that bubbles up is treated as an internal 500.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an operational error with an explicit status code.
func New(message string, code int) *Error {
	return &Error{Code: code, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

// Generation wraps an upstream text-generation failure. The provider's own
// description is kept in the message so clients can see what went wrong.
func Generation(action string, err error) *Error {
	return &Error{
		Code:    http.StatusInternalServerError,
		Message: fmt.Sprintf("%s failed: %v", action, err),
		Err:     err,
	}
}

// Duplicate names the field that collided on a uniqueness constraint.
func Duplicate(field string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: field + " already exists"}
}

// StatusCode extracts the status of an operational error, or 500.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

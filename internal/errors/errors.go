package errors

import (
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func NotFound(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func Conflict(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

func Unauthorized(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

func BadRequest(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func hasStatusCode(err error, code int) bool {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode == code
	}
	return false
}

func IsNotFound(err error) bool {
	return hasStatusCode(err, http.StatusNotFound)
}

func IsConflict(err error) bool {
	return hasStatusCode(err, http.StatusConflict)
}

// ValidationError carries a message for a single form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the error class surfaced to API clients.
type Code string

const (
	CodeNotFound     Code = "NOT_FOUND"
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeConflict     Code = "CONFLICT"
	CodeBusinessRule Code = "BUSINESS_RULE_VIOLATION"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code     Code   `json:"code"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
	Resource string `json:"-"`
	Err      error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Code:     CodeNotFound,
		Resource: resource,
		Message:  fmt.Sprintf("%s with ID %d not found", resource, id),
	}
}

// NotFoundf builds a not-found error with a custom message, for lookups
// that are not keyed by numeric ID.
func NotFoundf(resource, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:     CodeNotFound,
		Resource: resource,
		Message:  fmt.Sprintf(format, args...),
	}
}

func Validation(message, field string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func BusinessRule(message string) *AppError {
	return &AppError{
		Code:    CodeBusinessRule,
		Message: message,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// AsAppError unwraps err into an *AppError if one is present in its chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code Code) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus maps an error to the status code the boundary layer responds with.
func HTTPStatus(err error) int {
	appErr, ok := AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeBusinessRule:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Package apperror defines the error taxonomy the global HTTP error
// responder maps onto responses: StatusError carries an explicit HTTP status
// (auth and lookup failures), ValidationError is the 422 field-keyed shape.
// Anything else is treated as an unhandled 500.
package apperror

import "net/http"

type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func NewStatus(status int, message string) *StatusError {
	return &StatusError{Status: status, Message: message}
}

func Unauthorized(message string) *StatusError {
	return NewStatus(http.StatusUnauthorized, message)
}

func Forbidden(message string) *StatusError {
	return NewStatus(http.StatusForbidden, message)
}

func NotFound(message string) *StatusError {
	return NewStatus(http.StatusNotFound, message)
}

// ValidationError aggregates per-field failures. It always renders as 422.
type ValidationError struct {
	Message string
	Errors  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(errors map[string]string) *ValidationError {
	return &ValidationError{Message: "Validation Error", Errors: errors}
}

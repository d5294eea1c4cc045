package apperrors

import (
	"fmt"
	"net/http"
)

// Error represents an application error with an HTTP status code
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound signals that a referenced order, product, customer or store is missing.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// InvalidArgument signals a malformed or missing field in the request.
func InvalidArgument(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// InvalidState signals an operation attempted outside its allowed order status.
func InvalidState(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// InsufficientStock signals a requested quantity exceeding on-hand stock.
func InsufficientStock(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Internal wraps an unexpected failure in the persistence layer or a collaborator.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Internal server error", err)
}

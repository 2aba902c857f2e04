// Package errors defines the application error type shared by every layer.
// Services build AppErrors, handlers map them to HTTP responses, and the
// sentinel values let callers branch with errors.Is.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for the error categories callers branch on.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrMalformed     = errors.New("malformed stored data")
	ErrUnavailable   = errors.New("store unavailable")
	ErrInternal      = errors.New("internal error")
)

// AppError carries a stable machine code, a human message, and the HTTP
// status it maps to. Err links it to one of the sentinels for errors.Is.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// NotFound reports a missing resource (404).
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// AlreadyExists reports a uniqueness conflict (409).
func AlreadyExists(resource, field, value string) *AppError {
	return &AppError{
		Code:    "ALREADY_EXISTS",
		Message: fmt.Sprintf("%s with %s %q already exists", resource, field, value),
		Status:  http.StatusConflict,
		Err:     ErrAlreadyExists,
	}
}

// InvalidInput reports a caller mistake (400).
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Malformed reports stored data that cannot be decoded. Callers that can
// degrade to an empty state should treat it like ErrNotFound.
func Malformed(resource string, err error) *AppError {
	return &AppError{
		Code:    "MALFORMED_DATA",
		Message: fmt.Sprintf("stored %s cannot be decoded", resource),
		Status:  http.StatusInternalServerError,
		Err:     errors.Join(ErrMalformed, err),
	}
}

// Unavailable reports a failed read or write against the external store (503).
func Unavailable(operation string, err error) *AppError {
	return &AppError{
		Code:    "STORE_UNAVAILABLE",
		Message: fmt.Sprintf("%s failed against the backing store", operation),
		Status:  http.StatusServiceUnavailable,
		Err:     errors.Join(ErrUnavailable, err),
	}
}

// Internal reports an unexpected failure without leaking its detail (500).
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap adds context while keeping the chain intact for errors.Is/As.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus resolves the response status for any error: an AppError carries
// its own status, sentinels map to theirs, and everything else is a 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

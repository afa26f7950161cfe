package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the stable, machine readable error code sent to clients
type Kind string

const (
	KindNotFound             Kind = "NOT_FOUND"
	KindInvalidArgument      Kind = "INVALID_ARGUMENT"
	KindInvalidState         Kind = "INVALID_STATE"
	KindInsufficientResource Kind = "INSUFFICIENT_RESOURCE"
	KindUnauthorized         Kind = "UNAUTHORIZED"
	KindForbidden            Kind = "FORBIDDEN"
	KindConflict             Kind = "CONFLICT"
	KindInternal             Kind = "INTERNAL"
)

var kindStatus = map[Kind]int{
	KindNotFound:             http.StatusNotFound,
	KindInvalidArgument:      http.StatusBadRequest,
	KindInvalidState:         http.StatusConflict,
	KindInsufficientResource: http.StatusUnprocessableEntity,
	KindUnauthorized:         http.StatusUnauthorized,
	KindForbidden:            http.StatusForbidden,
	KindConflict:             http.StatusConflict,
	KindInternal:             http.StatusInternalServerError,
}

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"-"`
	Kind    Kind         `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`

	cause error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches any AppError of the same kind, so errors.Is(err, ErrInvalidState)
// holds for every invalid state error regardless of message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind != "" && t.Kind == e.Kind
}

// Common errors
var (
	ErrNotFound             = New(KindNotFound, "Resource not found")
	ErrInvalidArgument      = New(KindInvalidArgument, "Invalid argument")
	ErrInvalidState         = New(KindInvalidState, "Operation not allowed in the current state")
	ErrInsufficientResource = New(KindInsufficientResource, "Insufficient resource")
	ErrUnauthorized         = New(KindUnauthorized, "Unauthorized")
	ErrForbidden            = New(KindForbidden, "Forbidden")
	ErrConflict             = New(KindConflict, "Resource already exists")
	ErrInternalServer       = New(KindInternal, "Internal server error")
	ErrInvalidCredentials   = New(KindUnauthorized, "Invalid email or password")
	ErrTokenExpired         = New(KindUnauthorized, "Token has expired")
	ErrInvalidToken         = New(KindUnauthorized, "Invalid token")
)

// New creates an application error of the given kind
func New(kind Kind, message string) *AppError {
	code, ok := kindStatus[kind]
	if !ok {
		code = http.StatusInternalServerError
	}
	return &AppError{Code: code, Kind: kind, Message: message}
}

// Newf creates an application error with a formatted message
func Newf(kind Kind, format string, args ...any) *AppError {
	return New(kind, fmt.Sprintf(format, args...))
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	err := New(KindInvalidArgument, "Validation failed")
	err.Errors = fieldErrors
	return err
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return New(KindNotFound, resource+" not found")
}

// NewInvalidArgumentError creates an invalid argument error with a custom message
func NewInvalidArgumentError(message string) *AppError {
	return New(KindInvalidArgument, message)
}

// NewInvalidStateError creates an invalid state error with a custom message
func NewInvalidStateError(message string) *AppError {
	return New(KindInvalidState, message)
}

// NewInsufficientResourceError creates an insufficient resource error with a custom message
func NewInsufficientResourceError(message string) *AppError {
	return New(KindInsufficientResource, message)
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return New(KindConflict, message)
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return New(KindInvalidArgument, message)
}

// Wrap turns an unexpected error into an internal error keeping it as cause
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	e := New(KindInternal, message)
	e.cause = err
	return e
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: "Internal server error",
		cause:   err,
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeConflict    = "CONFLICT"
	ErrCodeParse       = "PARSE_ERROR"
	ErrCodeEmptyResult = "EMPTY_RESULT"
	ErrCodeIO          = "IO_ERROR"
	ErrCodeUnavailable = "UNAVAILABLE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
	Detail  string // Extra diagnostic text shown to the user (e.g. raw model output)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewConflictError creates a new CONFLICT error, used when an action no longer
// applies to the current state (answered card, stale card id).
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Status:  409,
	}
}

// NewParseError creates a PARSE_ERROR for model output that is not valid JSON.
// raw is kept so it can be shown for diagnosis.
func NewParseError(raw string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeParse,
		Message: "AI response was not valid JSON",
		Status:  502,
		Err:     err,
		Detail:  raw,
	}
}

// NewEmptyResultError creates an EMPTY_RESULT error for well-formed but empty output.
func NewEmptyResultError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyResult,
		Message: message,
		Status:  422,
	}
}

// NewIOError creates an IO_ERROR for durable storage failures.
func NewIOError(op string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeIO,
		Message: fmt.Sprintf("storage %s failed", op),
		Status:  500,
		Err:     err,
	}
}

// NewUnavailableError creates an UNAVAILABLE error for unconfigured collaborators.
func NewUnavailableError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnavailable,
		Message: message,
		Status:  503,
	}
}

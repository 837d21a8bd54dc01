package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for business logic errors.
const (
	CodeNotFound     = 1
	CodeConflict     = 2
	CodeValidation   = 3
	CodePersistence  = 4
	CodeUnauthorized = 5
	CodeRateLimited  = 6
)

// AppError represents a business logic error with a code, message, and optional wrapped error.
// Entity and ID are populated for not-found errors so callers never have to parse Message.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Entity  string `json:"entity,omitempty"`
	ID      string `json:"id,omitempty"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined business errors.
//
// To check whether an error matches one of these categories, use the
// corresponding helper function (IsNotFound, IsConflict, etc.) instead of
// errors.Is. The helpers compare codes via errors.As, so they match any
// *AppError carrying the same code, including wrapped ones.
var (
	ErrNotFound     = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrConflict     = &AppError{Code: CodeConflict, Message: "conflict"}
	ErrValidation   = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrPersistence  = &AppError{Code: CodePersistence, Message: "database error"}
	ErrUnauthorized = &AppError{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrRateLimited  = &AppError{Code: CodeRateLimited, Message: "too many requests"}
)

// NewAppError creates a new AppError with the given code, message, and wrapped error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFoundError reports that no row of the named entity has the given id.
func NotFoundError(entity string, id fmt.Stringer) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", entity, id),
		Entity:  entity,
		ID:      id.String(),
	}
}

// ConflictError reports a write rejected because of the entity's current state.
func ConflictError(entity, reason string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: entity + ": " + reason,
		Entity:  entity,
	}
}

// ValidationError reports malformed input that got past request binding.
func ValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// IsNotFound reports whether err is or wraps an AppError with CodeNotFound.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsConflict reports whether err is or wraps an AppError with CodeConflict.
func IsConflict(err error) bool {
	return hasCode(err, CodeConflict)
}

// IsValidation reports whether err is or wraps an AppError with CodeValidation.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsPersistence reports whether err is or wraps an AppError with CodePersistence.
func IsPersistence(err error) bool {
	return hasCode(err, CodePersistence)
}

// IsUnauthorized reports whether err is or wraps an AppError with CodeUnauthorized.
func IsUnauthorized(err error) bool {
	return hasCode(err, CodeUnauthorized)
}

func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// HTTPStatusCode maps an error to an HTTP status code.
// If the error is an *AppError, the code is mapped; otherwise http.StatusInternalServerError is returned.
func HTTPStatusCode(err error) int {
	var appErr *AppError
	if err != nil && errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		case CodeValidation:
			return http.StatusBadRequest
		case CodeUnauthorized:
			return http.StatusUnauthorized
		case CodeRateLimited:
			return http.StatusTooManyRequests
		case CodePersistence:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

package common

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-specific errors.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrDatabase     = errors.New("database error")
	ErrNoContent    = errors.New("no extractable content")
	ErrExternalCall = errors.New("external extraction call failed")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus maps an error onto the response status the API surfaces:
// invalid input 400, not found 404, empty documents 422, upstream capability
// failures 502, everything else 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrExternalCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

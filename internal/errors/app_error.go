package errors

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int // HTTP status reported by the backend, 0 for local failures
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeNetwork       = "NETWORK_ERROR"
	ErrCodeOrderRejected = "ORDER_REJECTED"
	ErrCodePersistence   = "PERSISTENCE_ERROR"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, 0)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, 0)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, 0)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, 0)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, 0)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, 0)
}

// NetworkError covers transport-level failures: DNS, refused connections,
// interrupted bodies. They never carry a backend status code.
func NetworkError(message string) *AppError {
	return NewAppError(ErrCodeNetwork, message, 0)
}

// OrderRejectedError carries the backend's rejection reason verbatim so the
// checkout flow can map known reasons onto form fields.
func OrderRejectedError(reason string) *AppError {
	return NewAppError(ErrCodeOrderRejected, reason, 0)
}

func PersistenceError(message string) *AppError {
	return NewAppError(ErrCodePersistence, message, 0)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// AddValidationError names the offending field in the message.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}

package apperrors

import (
	"errors"
	"net/http"
)

// Sentinel errors. Service code wraps these with %w and callers branch with
// errors.Is; the HTTP layer maps them to status codes via StatusFor.
var (
	// Record access
	ErrInvalidTable       = errors.New("unknown table")
	ErrValidationFailed   = errors.New("validation failed")
	ErrScopeViolation     = errors.New("record is outside the caller's branch")
	ErrBackendUnavailable = errors.New("record store unavailable")
	ErrBackendRejected    = errors.New("record store rejected the request")
	ErrNotFound           = errors.New("record not found")

	// Auth
	ErrEmptyAuthHeader   = errors.New("authorization header is missing")
	ErrInvalidAuthHeader = errors.New("authorization header is malformed")
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenIsNotAccess  = errors.New("token is not an access token")
	ErrForbidden         = errors.New("forbidden")
	ErrIdentityMissing   = errors.New("caller identity not found in request context")
)

// StatusFor maps each sentinel to the HTTP status it surfaces as.
var StatusFor = map[error]int{
	ErrInvalidTable:       http.StatusBadRequest,
	ErrValidationFailed:   http.StatusBadRequest,
	ErrScopeViolation:     http.StatusForbidden,
	ErrBackendUnavailable: http.StatusBadGateway,
	ErrBackendRejected:    http.StatusUnprocessableEntity,
	ErrNotFound:           http.StatusNotFound,
	ErrEmptyAuthHeader:    http.StatusUnauthorized,
	ErrInvalidAuthHeader:  http.StatusUnauthorized,
	ErrInvalidToken:       http.StatusUnauthorized,
	ErrTokenIsNotAccess:   http.StatusUnauthorized,
	ErrForbidden:          http.StatusForbidden,
	ErrIdentityMissing:    http.StatusUnauthorized,
}

// HttpError carries an explicit status code and a client-safe message. Err
// holds the underlying cause for logs; Details is extra payload for the
// response body.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewBadRequestError(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message, nil, nil)
}

func NewNotFoundError(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, nil, nil)
}

func NewForbiddenError(message string) *HttpError {
	return NewHttpError(http.StatusForbidden, message, nil, nil)
}

func NewInternalError(message string, err error) *HttpError {
	return NewHttpError(http.StatusInternalServerError, message, err, nil)
}

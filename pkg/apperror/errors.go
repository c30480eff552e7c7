package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrBadRequest        = errors.New("bad request")
	ErrInternal          = errors.New("internal server error")
	ErrInvalidInput      = errors.New("invalid input")
	ErrStoreUnavailable  = errors.New("storage unavailable")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// Domain failures carry the client-facing message text so the
	// response layer can forward them verbatim.
	ErrInvalidAccess     = errors.New("ERROR: Invalid Access")
	ErrDuplicateEmail    = errors.New("ERROR: Duplicated Email")
	ErrDuplicateNickname = errors.New("ERROR: Duplicated Nickname")
	ErrEmailNotExist     = errors.New("ERROR: Email not exist")
	ErrPasswordNotMatch  = errors.New("ERROR: Password not match")
	ErrTagNotExist       = errors.New("ERROR: Tag not exist")
	ErrUploadFailed      = errors.New("image upload failed")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrInvalidAccess) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicateNickname) ||
		errors.Is(err, ErrEmailNotExist) || errors.Is(err, ErrPasswordNotMatch) ||
		errors.Is(err, ErrTagNotExist) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrRateLimitExceeded) {
		return http.StatusTooManyRequests
	}
	// UploadFailed, StoreUnavailable and everything unknown default to 500
	return http.StatusInternalServerError
}

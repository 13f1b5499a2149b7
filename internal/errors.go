package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateUsername is returned by user creation when the username
	// is already taken. Checked before any write.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrNotFound is returned by point lookups that miss. Distinct from an
	// empty collection, which is a plain non-error result.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable wraps I/O-level failures so callers can tell
	// "storage is broken" apart from "no data yet".
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// AppError is the transport-facing error shape embedded in API responses.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

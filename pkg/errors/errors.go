package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code so clones still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound   = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal   = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss  = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Schedule rejection reasons.
var (
	ErrHourMismatch     = New("HOUR_MISMATCH", http.StatusUnprocessableEntity, "selected blocks do not match the module requirement")
	ErrOverContract     = New("OVER_CONTRACT", http.StatusUnprocessableEntity, "teacher contracted hours exceeded")
	ErrParityConflict   = New("PARITY_CONFLICT", http.StatusConflict, "schedule overlaps a cohort of opposite semester parity")
	ErrTeacherConflict  = New("TEACHER_CONFLICT", http.StatusConflict, "teacher already scheduled in this time range")
	ErrRoomConflict     = New("ROOM_CONFLICT", http.StatusConflict, "room already booked in this time range")
	ErrMalformedRange   = New("MALFORMED_RANGE", http.StatusUnprocessableEntity, "time range is not aligned to the block grid")
	ErrPersistenceError = New("PERSISTENCE_ERROR", http.StatusInternalServerError, "failed to persist schedule")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

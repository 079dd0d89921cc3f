package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed error every layer returns upward. Code is the stable
// machine-readable identifier; Status is the HTTP status the handler layer
// responds with.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors by code, so errors.Is works across wrapped and cloned
// instances of the same sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e != nil && t != nil && e.Code == t.Code
}

// New builds a fresh Error.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches a cause to a new Error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Generic sentinels.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrPreconditionFailed = New("PRECONDITION_FAILED", http.StatusPreconditionFailed, "precondition failed")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Scheduling sentinels. Slot conflicts are expected outcomes of a commit
// attempt and map to 409 so clients can surface them verbatim.
var (
	ErrRoomConflict           = New("ROOM_CONFLICT", http.StatusConflict, "room already occupied in this slot")
	ErrTeacherConflict        = New("TEACHER_CONFLICT", http.StatusConflict, "teacher already occupied in this slot")
	ErrTeacherLectureConflict = New("TEACHER_LECTURE_CONFLICT", http.StatusConflict, "teacher holds a lecture in this slot")
	ErrBlackoutConflict       = New("BLACKOUT_CONFLICT", http.StatusConflict, "slot is blocked by a blackout rule")
	ErrStudentConflict        = New("STUDENT_CONFLICT", http.StatusConflict, "student already occupied in this slot")
	ErrLargeClassConflict     = New("LARGE_CLASS_CONFLICT", http.StatusConflict, "slot collides with a scheduled large class")
	ErrGroupInvalid           = New("GROUP_INVALID", http.StatusUnprocessableEntity, "group composition is invalid")
	ErrQuotaExceeded          = New("QUOTA_EXCEEDED", http.StatusConflict, "course session quota exceeded")
)

// FromError normalises any error into an *Error, defaulting to the internal
// sentinel for unknown causes.
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

// Clone copies a sentinel, optionally overriding the message. Sentinels are
// shared and must never be mutated in place.
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

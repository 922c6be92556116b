package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/calendar/internal/calendar"
)

// Error is returned when a submission or deletion is rejected.
//
// Rejections include:
//   - Validation: missing title, missing or malformed times, start >= end
//   - Conflict: the interval overlaps another event on the same date
//   - Not found: the referenced event id is not in the store
//
// A rejected operation never modifies the store.
type Error struct {
	// Code identifies the rejection category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Field names the offending draft field for validation errors.
	Field string

	// EventID identifies the event being edited or deleted, if any.
	EventID calendar.ID

	// Date is the target date of the submission.
	Date calendar.Date

	// Conflicts lists the overlapping events for conflict errors.
	Conflicts []calendar.Event
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates the draft failed validation.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeConflict indicates the draft overlaps an existing event.
	ErrCodeConflict ErrorCode = "CONFLICT"

	// ErrCodeNotFound indicates the referenced event does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	case e.EventID != "":
		return fmt.Sprintf("%s: %s (event=%s)", e.Code, e.Message, e.EventID)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsValidationError returns true if err is a validation rejection.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsConflictError returns true if err is a time-conflict rejection.
func IsConflictError(err error) bool {
	return hasCode(err, ErrCodeConflict)
}

// IsNotFoundError returns true if err references a missing event.
func IsNotFoundError(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// NewValidationError creates an Error for a failed draft check.
func NewValidationError(field, message string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewConflictError creates an Error for an overlapping interval.
func NewConflictError(date calendar.Date, id calendar.ID, conflicts []calendar.Event) *Error {
	return &Error{
		Code:      ErrCodeConflict,
		Message:   fmt.Sprintf("time conflicts with %d existing event(s) on %s", len(conflicts), date),
		EventID:   id,
		Date:      date,
		Conflicts: conflicts,
	}
}

// NewNotFoundError creates an Error for an unknown event id.
func NewNotFoundError(id calendar.ID) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: "event not found",
		EventID: id,
	}
}

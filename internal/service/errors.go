package service

import (
	"errors"
	"strings"
)

var (
	// ErrItemNotFound is returned when a submission names an unknown article.
	ErrItemNotFound = errors.New("article number not found")

	// ErrIllegalTransition is returned when a status change is not allowed.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrFlagLocked is returned when a flag cannot change in the current status.
	ErrFlagLocked = errors.New("flag cannot change in current status")

	// ErrInvalidStatus is returned for a status outside the workflow.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidFlag is returned for an unknown flag name.
	ErrInvalidFlag = errors.New("invalid flag")
)

// FieldError describes one rejected submission field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when a submission is incomplete. No record is
// created when it is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "incomplete submission: " + strings.Join(parts, ", ")
}

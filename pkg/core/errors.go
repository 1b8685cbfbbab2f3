package core

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	MsgInvalidTitle = "Invalid title - must be at least 5 characters long."
	MsgNoNotes      = "Could not find any notes."
	MsgNoteNotFound = "Could not find the requested note."
)

// Common errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
	ErrReadOnly   = errors.New("store is in read-only mode")
)

// ValidationError is returned when a submission is rejected.
// Message is meant to be shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError signals that there is nothing to show, which is not a fault.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// UserMessage returns the message to display for err, falling back to
// generic when err carries no user-facing message.
func UserMessage(err error, generic string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var nerr *NotFoundError
	if errors.As(err, &nerr) {
		return nerr.Message
	}
	return generic
}

package tasks

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks rejected input. No state was changed.
	ErrValidation = errors.New("validation failed")

	// ErrPersist marks a failed write. The in-memory change was kept.
	ErrPersist = errors.New("persist failed")
)

// ValidationError describes why a task could not be created.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// PersistError wraps the backing store failure for the operation that caused it.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: save tasks: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() []error { return []error{ErrPersist, e.Err} }

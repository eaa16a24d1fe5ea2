package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTarget is returned by Bind for unknown or completed tasks.
	ErrInvalidTarget = errors.New("invalid session target")

	// ErrNotIdle is returned by Bind while a session is running or paused.
	ErrNotIdle = errors.New("session already active")
)

// InvalidTargetError names the task a Bind was rejected for.
type InvalidTargetError struct {
	TaskID string
	Reason string // "not found" or "completed"
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("cannot start session on task %s: %s", e.TaskID, e.Reason)
}

func (e *InvalidTargetError) Unwrap() error { return ErrInvalidTarget }

package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iammorganparry/focus/internal/model"
)

// ErrCorrupt is returned when a stored blob cannot be decoded as a task list.
var ErrCorrupt = errors.New("corrupt task data")

// Encode serializes tasks as an ordered JSON array. A nil slice encodes as [].
func Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a JSON task array, preserving order. JSON null decodes as an
// empty list.
func Decode(data []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

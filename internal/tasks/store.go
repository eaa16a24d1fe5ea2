// Package tasks owns the ordered task collection and its per-task session
// counters. It has no knowledge of time or of the session engine.
package tasks

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/iammorganparry/focus/internal/model"
	"github.com/iammorganparry/focus/internal/store"
)

// Store holds tasks in insertion order and writes the full collection to its
// persister after every mutation. It is not safe for concurrent use; callers
// drive it from a single goroutine.
type Store struct {
	tasks     []model.Task
	persister store.Persister
	newID     func() string
	logger    *slog.Logger
}

// New creates a store and restores any previously saved tasks. A nil logger
// falls back to slog.Default().
func New(persister store.Persister, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		persister: persister,
		newID:     func() string { return uuid.New().String() },
		logger:    logger,
	}

	saved, found, err := persister.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if found {
		s.tasks = saved
	}
	logger.Debug("task store loaded", "count", len(s.tasks), "found", found)
	return s, nil
}

// Add creates a task from text. Surrounding whitespace is trimmed and the
// result must be non-empty valid UTF-8. A *PersistError is returned alongside the created
// task when the write fails.
func (s *Store) Add(text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	if !utf8.ValidString(text) {
		return model.Task{}, &ValidationError{Field: "text", Reason: "must be valid UTF-8"}
	}

	t := model.Task{
		ID:             s.newID(),
		Text:           text,
		TargetSessions: model.DefaultTargetSessions,
	}
	s.tasks = append(s.tasks, t)
	return t, s.save("add")
}

// ToggleCompleted flips the completed flag. Unknown ids are ignored.
func (s *Store) ToggleCompleted(id string) error {
	i := s.index(id)
	if i < 0 {
		s.logger.Debug("toggle of unknown task ignored", "task_id", id)
		return nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.save("toggle")
}

// Remove deletes the task. Unknown ids are ignored. Callers that run a session
// must stop it themselves when the removed task was bound.
func (s *Store) Remove(id string) error {
	i := s.index(id)
	if i < 0 {
		s.logger.Debug("remove of unknown task ignored", "task_id", id)
		return nil
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return s.save("remove")
}

// IncrementCompletedSessions credits one finished session to the task.
// Unknown ids are ignored.
func (s *Store) IncrementCompletedSessions(id string) error {
	i := s.index(id)
	if i < 0 {
		s.logger.Debug("increment of unknown task ignored", "task_id", id)
		return nil
	}
	s.tasks[i].CompletedSessions++
	return s.save("increment")
}

// Get returns the task with id.
func (s *Store) Get(id string) (model.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// List returns a copy of all tasks in display order.
func (s *Store) List() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

func (s *Store) save(op string) error {
	if err := s.persister.Save(s.List()); err != nil {
		s.logger.Warn("task persistence failed", "op", op, "error", err)
		return &PersistError{Op: op, Err: err}
	}
	return nil
}

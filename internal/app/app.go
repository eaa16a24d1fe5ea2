// Package app is the application layer between the user-facing surfaces and
// the core. It owns the rules that span the task store and the session engine.
package app

import (
	"errors"
	"log/slog"

	"github.com/iammorganparry/focus/internal/model"
	"github.com/iammorganparry/focus/internal/session"
	"github.com/iammorganparry/focus/internal/stats"
	"github.com/iammorganparry/focus/internal/tasks"
)

// State is everything a surface needs to render.
type State struct {
	Tasks   []model.Task   `json:"tasks"`
	Session model.Snapshot `json:"session"`
	Stats   stats.Summary  `json:"stats"`
}

// App coordinates the task store and the session engine. It is not safe for
// concurrent use; wrap calls in a Loop when several goroutines drive it.
type App struct {
	tasks  *tasks.Store
	engine *session.Engine
	logger *slog.Logger
}

func New(store *tasks.Store, engine *session.Engine, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{tasks: store, engine: engine, logger: logger}
}

// AddTask creates a task.
func (a *App) AddTask(text string) (model.Task, error) {
	t, err := a.tasks.Add(text)
	if err != nil && !errors.Is(err, tasks.ErrPersist) {
		return t, err
	}
	a.logger.Info("task added", "task_id", t.ID)
	return t, err
}

// ToggleTask flips a task's completed flag. A running session on the task
// keeps running.
func (a *App) ToggleTask(id string) error {
	return a.tasks.ToggleCompleted(id)
}

// DeleteTask removes a task and, if the session is crediting it, stops the
// session in the same action so no expiry can land on a deleted task. The
// session is stopped even when persisting the removal fails.
func (a *App) DeleteTask(id string) error {
	bound := a.engine.BoundTaskID() == id
	err := a.tasks.Remove(id)
	if bound {
		a.engine.Stop()
	}
	a.logger.Info("task deleted", "task_id", id, "stopped_session", bound)
	return err
}

// StartSession focuses on taskID. Starting on another task while a session
// is active abandons the current session without credit. Starting on the task
// already being focused on leaves the session untouched. An invalid target
// leaves the current session untouched.
func (a *App) StartSession(taskID string) error {
	snap := a.engine.Snapshot()
	if snap.Active() && snap.BoundTaskID == taskID {
		return nil
	}
	if err := session.CheckTarget(a.tasks, taskID); err != nil {
		return err
	}
	if snap.Active() {
		a.logger.Info("switching session", "from", snap.BoundTaskID, "to", taskID)
		a.engine.Stop()
	}
	return a.engine.Bind(taskID)
}

// TogglePause pauses a running session or resumes a paused one.
func (a *App) TogglePause() {
	switch a.engine.Status() {
	case model.StatusRunning:
		a.engine.Pause()
	case model.StatusPaused:
		a.engine.Resume()
	}
}

func (a *App) PauseSession()  { a.engine.Pause() }
func (a *App) ResumeSession() { a.engine.Resume() }
func (a *App) StopSession()   { a.engine.Stop() }

// Tasks returns the task list in display order.
func (a *App) Tasks() []model.Task { return a.tasks.List() }

// Task looks up a task by id.
func (a *App) Task(id string) (model.Task, bool) { return a.tasks.Get(id) }

// Session returns the current session snapshot.
func (a *App) Session() model.Snapshot { return a.engine.Snapshot() }

// BoundTask returns the task the session is crediting, if any.
func (a *App) BoundTask() (model.Task, bool) {
	id := a.engine.BoundTaskID()
	if id == "" {
		return model.Task{}, false
	}
	return a.tasks.Get(id)
}

// Stats computes the running totals.
func (a *App) Stats() stats.Summary {
	return stats.Compute(a.tasks.List(), a.engine.Duration())
}

// State returns a full snapshot for rendering.
func (a *App) State() State {
	list := a.tasks.List()
	return State{
		Tasks:   list,
		Session: a.engine.Snapshot(),
		Stats:   stats.Compute(list, a.engine.Duration()),
	}
}

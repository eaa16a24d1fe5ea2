// Package session implements the single focus-timer state machine.
//
// The engine counts a fixed duration down one tick at a time while bound to at
// most one task. A natural expiry credits the bound task and notifies the user
// exactly once; a manual stop never does. The engine is not safe for concurrent
// use: all calls, including tick callbacks, must come from one goroutine.
package session

import (
	"log/slog"
	"time"

	"github.com/iammorganparry/focus/internal/model"
)

const (
	// DefaultDuration is the length of a focus session in seconds.
	DefaultDuration = 25 * 60

	// TickPeriod is the wall-clock length of one tick.
	TickPeriod = time.Second
)

// Tasks is the part of the task store the engine depends on.
type Tasks interface {
	Get(id string) (model.Task, bool)
	IncrementCompletedSessions(id string) error
}

// Notifier alerts the user that a session finished. label is the bound task's
// text, or empty when no task was bound. Failures are logged and ignored.
type Notifier interface {
	NotifyCompletion(label string) error
}

// TransitionFunc observes every status change.
type TransitionFunc func(from, to model.Status)

// Engine is the session state machine.
type Engine struct {
	tasks    Tasks
	clock    Clock
	notifier Notifier
	logger   *slog.Logger

	status    model.Status
	duration  int
	remaining int
	boundID   string
	handle    Handle

	onTransition TransitionFunc
}

// NewEngine creates an idle engine. A non-positive duration falls back to
// DefaultDuration. notifier may be nil. A nil logger falls back to
// slog.Default().
func NewEngine(tasks Tasks, clock Clock, notifier Notifier, duration int, logger *slog.Logger) *Engine {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		tasks:     tasks,
		clock:     clock,
		notifier:  notifier,
		logger:    logger,
		status:    model.StatusIdle,
		duration:  duration,
		remaining: duration,
	}
}

// OnTransition registers fn to be called after every status change.
func (e *Engine) OnTransition(fn TransitionFunc) {
	e.onTransition = fn
}

// Bind starts a session on taskID. It is only valid while idle.
func (e *Engine) Bind(taskID string) error {
	if e.status != model.StatusIdle {
		return ErrNotIdle
	}
	if err := CheckTarget(e.tasks, taskID); err != nil {
		return err
	}

	e.boundID = taskID
	e.remaining = e.duration
	e.setStatus(model.StatusRunning)
	e.startTicking()
	e.logger.Info("session started", "task_id", taskID, "duration", e.duration)
	return nil
}

// CheckTarget reports whether a session may be bound to taskID: the task must
// exist and not be completed.
func CheckTarget(tasks Tasks, taskID string) error {
	task, ok := tasks.Get(taskID)
	if !ok {
		return &InvalidTargetError{TaskID: taskID, Reason: "not found"}
	}
	if task.Completed {
		return &InvalidTargetError{TaskID: taskID, Reason: "completed"}
	}
	return nil
}

// Pause freezes the countdown. It is a no-op unless running.
func (e *Engine) Pause() {
	if e.status != model.StatusRunning {
		return
	}
	e.stopTicking()
	e.setStatus(model.StatusPaused)
	e.logger.Debug("session paused", "remaining", e.remaining)
}

// Resume continues a paused countdown from where it stopped. It is a no-op
// unless paused.
func (e *Engine) Resume() {
	if e.status != model.StatusPaused {
		return
	}
	e.setStatus(model.StatusRunning)
	e.startTicking()
	e.logger.Debug("session resumed", "remaining", e.remaining)
}

// Stop abandons any session without crediting it. Safe to call when idle.
func (e *Engine) Stop() {
	e.stopTicking()
	wasActive := e.status != model.StatusIdle
	e.reset()
	if wasActive {
		e.logger.Info("session stopped")
	}
}

// Tick advances the countdown by one unit. It is a no-op unless running.
func (e *Engine) Tick() {
	if e.status != model.StatusRunning {
		return
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining > 0 {
		return
	}

	e.stopTicking()
	e.setStatus(model.StatusExpired)
	e.complete()
	e.reset()
}

// Snapshot returns the current session state.
func (e *Engine) Snapshot() model.Snapshot {
	return model.Snapshot{
		Status:      e.status,
		Remaining:   e.remaining,
		Duration:    e.duration,
		BoundTaskID: e.boundID,
	}
}

// Status returns the current status.
func (e *Engine) Status() model.Status { return e.status }

// BoundTaskID returns the id of the task being credited, or "".
func (e *Engine) BoundTaskID() string { return e.boundID }

// Duration returns the session length in seconds.
func (e *Engine) Duration() int { return e.duration }

// complete runs the completion protocol: credit the bound task if it still
// exists, then notify. Neither step can stop the other or the reset after.
func (e *Engine) complete() {
	label := ""
	if e.boundID != "" {
		if task, ok := e.tasks.Get(e.boundID); ok {
			label = task.Text
			if err := e.tasks.IncrementCompletedSessions(e.boundID); err != nil {
				e.logger.Warn("failed to persist completed session", "task_id", e.boundID, "error", err)
			}
		} else {
			e.logger.Debug("bound task gone at expiry", "task_id", e.boundID)
		}
	}
	e.logger.Info("session completed", "task_id", e.boundID)

	if e.notifier == nil {
		return
	}
	if err := e.notifier.NotifyCompletion(label); err != nil {
		e.logger.Debug("completion notification failed", "error", err)
	}
}

func (e *Engine) reset() {
	e.remaining = e.duration
	e.boundID = ""
	e.setStatus(model.StatusIdle)
}

func (e *Engine) setStatus(to model.Status) {
	from := e.status
	if from == to {
		return
	}
	e.status = to
	if e.onTransition != nil {
		e.onTransition(from, to)
	}
}

func (e *Engine) startTicking() {
	var h Handle
	h = e.clock.Start(TickPeriod, func() { e.tickFrom(h) })
	e.handle = h
}

func (e *Engine) stopTicking() {
	if e.handle == 0 {
		return
	}
	e.clock.Cancel(e.handle)
	e.handle = 0
}

// tickFrom drops ticks from cancelled or superseded tick sources before
// anything is mutated.
func (e *Engine) tickFrom(h Handle) {
	if h == 0 || h != e.handle {
		e.logger.Debug("stale tick dropped", "handle", h)
		return
	}
	e.Tick()
}

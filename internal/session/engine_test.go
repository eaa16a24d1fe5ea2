package session

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/iammorganparry/focus/internal/model"
)

// fakeTasks records increments and serves tasks from a map.
type fakeTasks struct {
	tasks      map[string]model.Task
	increments map[string]int
	calls      int
	err        error
}

func newFakeTasks(tasks ...model.Task) *fakeTasks {
	f := &fakeTasks{tasks: map[string]model.Task{}, increments: map[string]int{}}
	for _, t := range tasks {
		f.tasks[t.ID] = t
	}
	return f
}

func (f *fakeTasks) Get(id string) (model.Task, bool) {
	t, ok := f.tasks[id]
	return t, ok
}

func (f *fakeTasks) IncrementCompletedSessions(id string) error {
	f.calls++
	t, ok := f.tasks[id]
	if !ok {
		return nil
	}
	t.CompletedSessions++
	f.tasks[id] = t
	f.increments[id]++
	return f.err
}

type recordingNotifier struct {
	labels []string
	err    error
}

func (n *recordingNotifier) NotifyCompletion(label string) error {
	n.labels = append(n.labels, label)
	return n.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type harness struct {
	engine   *Engine
	tasks    *fakeTasks
	clock    *ManualClock
	notifier *recordingNotifier
	path     []model.Status
}

func newHarness(duration int, tasks ...model.Task) *harness {
	h := &harness{
		tasks:    newFakeTasks(tasks...),
		clock:    NewManualClock(),
		notifier: &recordingNotifier{},
	}
	h.engine = NewEngine(h.tasks, h.clock, h.notifier, duration, testLogger())
	h.engine.OnTransition(func(_, to model.Status) { h.path = append(h.path, to) })
	return h
}

func openTask(id string) model.Task {
	return model.Task{ID: id, Text: "task " + id, TargetSessions: 1}
}

func TestThreeTickSessionCreditsTaskOnce(t *testing.T) {
	h := newHarness(3, openTask("t1"))

	if err := h.engine.Bind("t1"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	h.engine.Tick()
	h.engine.Tick()
	h.engine.Tick()

	if got := h.tasks.tasks["t1"].CompletedSessions; got != 1 {
		t.Errorf("CompletedSessions = %d, want 1", got)
	}
	if h.tasks.calls != 1 {
		t.Errorf("increment calls = %d, want 1", h.tasks.calls)
	}
	snap := h.engine.Snapshot()
	if snap.Status != model.StatusIdle || snap.Remaining != 3 || snap.BoundTaskID != "" {
		t.Errorf("final snapshot = %+v, want idle/3/unbound", snap)
	}
	if len(h.notifier.labels) != 1 || h.notifier.labels[0] != "task t1" {
		t.Errorf("notifier labels = %v", h.notifier.labels)
	}

	want := []model.Status{model.StatusRunning, model.StatusExpired, model.StatusIdle}
	if len(h.path) != len(want) {
		t.Fatalf("transitions = %v, want %v", h.path, want)
	}
	for i := range want {
		if h.path[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", h.path, want)
		}
	}
}

func TestClockDrivenSession(t *testing.T) {
	h := newHarness(3, openTask("t1"))
	if err := h.engine.Bind("t1"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if h.clock.Active() != 1 {
		t.Fatalf("expected one live tick source, got %d", h.clock.Active())
	}

	h.clock.Advance(5)

	if got := h.tasks.increments["t1"]; got != 1 {
		t.Errorf("increments = %d, want 1", got)
	}
	if h.clock.Active() != 0 {
		t.Errorf("tick source should be cancelled after expiry, %d live", h.clock.Active())
	}
}

func TestBindRejectsInvalidTargets(t *testing.T) {
	tests := []struct {
		name   string
		taskID string
		reason string
	}{
		{"unknown task", "missing", "not found"},
		{"completed task", "done", "completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := openTask("done")
			done.Completed = true
			h := newHarness(3, done)

			err := h.engine.Bind(tt.taskID)
			if !errors.Is(err, ErrInvalidTarget) {
				t.Fatalf("Bind error = %v, want ErrInvalidTarget", err)
			}
			var terr *InvalidTargetError
			if !errors.As(err, &terr) || terr.Reason != tt.reason || terr.TaskID != tt.taskID {
				t.Errorf("unexpected error detail: %#v", err)
			}
			if h.engine.Status() != model.StatusIdle {
				t.Errorf("status = %s, want idle", h.engine.Status())
			}
			if h.clock.Started != 0 {
				t.Error("no tick source should be started")
			}
		})
	}
}

func TestBindOnlyFromIdle(t *testing.T) {
	h := newHarness(10, openTask("a"), openTask("b"))
	if err := h.engine.Bind("a"); err != nil {
		t.Fatal(err)
	}
	if err := h.engine.Bind("b"); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("Bind while running = %v, want ErrNotIdle", err)
	}
	h.engine.Pause()
	if err := h.engine.Bind("b"); !errors.Is(err, ErrNotIdle) {
		t.Fatalf("Bind while paused = %v, want ErrNotIdle", err)
	}
	if h.engine.BoundTaskID() != "a" {
		t.Errorf("bound task changed to %q", h.engine.BoundTaskID())
	}
}

func TestRemainingIsMonotonicAndNonNegative(t *testing.T) {
	h := newHarness(5, openTask("t1"))
	_ = h.engine.Bind("t1")

	prev := h.engine.Snapshot().Remaining
	for i := 0; i < 4; i++ {
		h.engine.Tick()
		cur := h.engine.Snapshot().Remaining
		if cur > prev {
			t.Fatalf("remaining increased from %d to %d", prev, cur)
		}
		if cur < 0 {
			t.Fatalf("remaining went negative: %d", cur)
		}
		prev = cur
	}
	if prev != 1 {
		t.Errorf("remaining after 4 of 5 ticks = %d, want 1", prev)
	}
}

func TestStopBeforeExpiryNeverCredits(t *testing.T) {
	h := newHarness(3, openTask("t1"))
	_ = h.engine.Bind("t1")
	h.engine.Tick()
	h.engine.Tick()
	h.engine.Stop()

	if h.tasks.calls != 0 {
		t.Errorf("stop should not increment, got %d calls", h.tasks.calls)
	}
	if len(h.notifier.labels) != 0 {
		t.Errorf("stop should not notify, got %v", h.notifier.labels)
	}
	snap := h.engine.Snapshot()
	if snap.Status != model.StatusIdle || snap.Remaining != 3 || snap.BoundTaskID != "" {
		t.Errorf("snapshot after stop = %+v", snap)
	}
	for _, s := range h.path {
		if s == model.StatusExpired {
			t.Fatal("stop must not pass through expired")
		}
	}

	// Ticks after stop are ignored.
	h.engine.Tick()
	if h.engine.Snapshot().Remaining != 3 {
		t.Error("tick while idle changed remaining")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	h := newHarness(3)
	h.engine.Stop()
	h.engine.Stop()
	if h.engine.Status() != model.StatusIdle {
		t.Errorf("status = %s", h.engine.Status())
	}
	if len(h.path) != 0 {
		t.Errorf("stopping an idle engine should not transition, got %v", h.path)
	}
}

func TestPauseResume(t *testing.T) {
	h := newHarness(10, openTask("t1"))
	_ = h.engine.Bind("t1")
	h.engine.Tick()
	h.engine.Tick()

	before := h.engine.Snapshot().Remaining
	h.engine.Pause()
	h.engine.Resume()
	if got := h.engine.Snapshot().Remaining; got != before {
		t.Errorf("pause+resume changed remaining %d -> %d", before, got)
	}
	if h.engine.Status() != model.StatusRunning {
		t.Errorf("status = %s, want running", h.engine.Status())
	}
}

func TestPausedEngineIgnoresTicks(t *testing.T) {
	h := newHarness(10, openTask("t1"))
	_ = h.engine.Bind("t1")
	h.clock.Advance(3)
	h.engine.Pause()

	if h.clock.Active() != 0 {
		t.Fatalf("pause should cancel the tick source, %d live", h.clock.Active())
	}
	h.clock.Advance(5)
	h.engine.Tick()
	if got := h.engine.Snapshot().Remaining; got != 7 {
		t.Errorf("remaining while paused = %d, want 7", got)
	}

	h.engine.Resume()
	h.clock.Advance(2)
	if got := h.engine.Snapshot().Remaining; got != 5 {
		t.Errorf("remaining after resume = %d, want 5", got)
	}
}

func TestPauseAndResumeOutsideTheirStatesAreNoOps(t *testing.T) {
	h := newHarness(10, openTask("t1"))
	h.engine.Pause()
	h.engine.Resume()
	if h.engine.Status() != model.StatusIdle || len(h.path) != 0 {
		t.Fatalf("idle engine changed: status=%s path=%v", h.engine.Status(), h.path)
	}

	_ = h.engine.Bind("t1")
	h.engine.Resume()
	if h.clock.Started != 1 {
		t.Errorf("resume while running started another tick source (%d)", h.clock.Started)
	}
	h.engine.Pause()
	h.engine.Pause()
	if h.clock.Cancelled != 1 {
		t.Errorf("second pause cancelled again (%d)", h.clock.Cancelled)
	}
}

func TestCancelledTickIsDropped(t *testing.T) {
	t.Run("after stop", func(t *testing.T) {
		h := newHarness(3, openTask("t1"))
		_ = h.engine.Bind("t1")
		inFlight := h.clock.Last()
		h.engine.Stop()

		h.clock.Fire(inFlight)
		if h.engine.Snapshot().Remaining != 3 {
			t.Error("a tick from a stopped source mutated the engine")
		}
	})

	t.Run("after pause", func(t *testing.T) {
		h := newHarness(3, openTask("t1"))
		_ = h.engine.Bind("t1")
		inFlight := h.clock.Last()
		h.engine.Pause()

		h.clock.Fire(inFlight)
		if h.engine.Snapshot().Remaining != 3 {
			t.Error("a tick from a paused source mutated the engine")
		}
	})

	t.Run("orphan from previous session after restart", func(t *testing.T) {
		h := newHarness(3, openTask("t1"))
		_ = h.engine.Bind("t1")
		orphan := h.clock.Last()
		h.engine.Stop()
		_ = h.engine.Bind("t1")

		h.clock.Fire(orphan)
		if got := h.engine.Snapshot().Remaining; got != 3 {
			t.Errorf("orphan tick double-decremented: remaining = %d", got)
		}
		h.clock.Fire(h.clock.Last())
		if got := h.engine.Snapshot().Remaining; got != 2 {
			t.Errorf("live tick not applied: remaining = %d", got)
		}
	})
}

func TestExpiryWithDeletedTaskDoesNotCredit(t *testing.T) {
	h := newHarness(1, openTask("a"))
	_ = h.engine.Bind("a")
	delete(h.tasks.tasks, "a")

	h.clock.Advance(1)

	if len(h.tasks.increments) != 0 {
		t.Errorf("deleted task was credited: %v", h.tasks.increments)
	}
	if len(h.notifier.labels) != 1 || h.notifier.labels[0] != "" {
		t.Errorf("expected one unlabeled notification, got %q", h.notifier.labels)
	}
	if h.engine.Status() != model.StatusIdle {
		t.Errorf("status = %s, want idle", h.engine.Status())
	}
}

func TestNotifierFailureDoesNotBlockCompletion(t *testing.T) {
	h := newHarness(1, openTask("t1"))
	h.notifier.err = errors.New("permission denied")
	_ = h.engine.Bind("t1")
	h.engine.Tick()

	if h.tasks.increments["t1"] != 1 {
		t.Error("increment should happen despite notifier failure")
	}
	if h.engine.Status() != model.StatusIdle {
		t.Errorf("status = %s, want idle", h.engine.Status())
	}
}

func TestPersistFailureDoesNotBlockCompletion(t *testing.T) {
	h := newHarness(1, openTask("t1"))
	h.tasks.err = errors.New("disk full")
	_ = h.engine.Bind("t1")
	h.engine.Tick()

	if h.engine.Status() != model.StatusIdle {
		t.Errorf("status = %s, want idle", h.engine.Status())
	}
	if len(h.notifier.labels) != 1 {
		t.Error("notification should still fire")
	}
}

func TestNilNotifier(t *testing.T) {
	tasks := newFakeTasks(openTask("t1"))
	e := NewEngine(tasks, NewManualClock(), nil, 1, testLogger())
	_ = e.Bind("t1")
	e.Tick()
	if tasks.increments["t1"] != 1 {
		t.Error("expected increment with nil notifier")
	}
}

func TestDefaultDuration(t *testing.T) {
	e := NewEngine(newFakeTasks(), NewManualClock(), nil, 0, testLogger())
	if e.Duration() != DefaultDuration {
		t.Errorf("Duration() = %d, want %d", e.Duration(), DefaultDuration)
	}
	if e.Snapshot().Remaining != 1500 {
		t.Errorf("Remaining = %d, want 1500", e.Snapshot().Remaining)
	}
}

func TestNilLogger(t *testing.T) {
	tasks := newFakeTasks(openTask("a"))
	e := NewEngine(tasks, NewManualClock(), nil, 1, nil)
	if err := e.Bind("a"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	e.Tick()
	if tasks.increments["a"] != 1 {
		t.Errorf("increments = %d, want 1", tasks.increments["a"])
	}
}

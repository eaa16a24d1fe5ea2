package model

// Task is a trackable unit of work with a completion flag and a focus-session counter.
// The JSON field names are the persisted wire format and must not change.
type Task struct {
	ID                string `json:"id"`
	Text              string `json:"text"`
	Completed         bool   `json:"completed"`
	TargetSessions    int    `json:"pomodoros"`
	CompletedSessions int    `json:"completedPomodoros"`
}

// DefaultTargetSessions is the planned session count given to new tasks.
const DefaultTargetSessions = 1

// StatusIcon returns the icon for the task's completion state
func (t Task) StatusIcon() string {
	if t.Completed {
		return "✓"
	}
	return "○"
}

// TargetReached reports whether the task has at least as many completed
// sessions as planned. Sessions beyond the target are still counted.
func (t Task) TargetReached() bool {
	return t.CompletedSessions >= t.TargetSessions
}

package model

// Status is the state of the focus session.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
	StatusExpired Status = "expired" // transient, visited once per natural expiry
)

// Snapshot is a read-only view of the session for display.
type Snapshot struct {
	Status      Status `json:"status"`
	Remaining   int    `json:"remaining"` // seconds
	Duration    int    `json:"duration"`  // seconds
	BoundTaskID string `json:"boundTaskId,omitempty"`
}

// Active reports whether a session is running or paused.
func (s Snapshot) Active() bool {
	return s.Status == StatusRunning || s.Status == StatusPaused
}

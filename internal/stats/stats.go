// Package stats aggregates running totals over a task snapshot.
package stats

import "github.com/iammorganparry/focus/internal/model"

// Summary holds the totals shown in the statistics panel.
type Summary struct {
	CompletedSessions int `json:"completedSessions"`
	FocusMinutes      int `json:"focusMinutes"`
	CompletedTasks    int `json:"completedTasks"`
	TotalTasks        int `json:"totalTasks"`
}

// Compute sums completed sessions, converts them to focused minutes at
// sessionSeconds each, and counts completed tasks. Minutes are rounded down
// once over the total, so partial minutes from several sessions add up.
func Compute(tasks []model.Task, sessionSeconds int) Summary {
	s := Summary{TotalTasks: len(tasks)}
	for _, t := range tasks {
		s.CompletedSessions += t.CompletedSessions
		if t.Completed {
			s.CompletedTasks++
		}
	}
	s.FocusMinutes = s.CompletedSessions * sessionSeconds / 60
	return s
}

// SessionMinutes converts a session duration in seconds to whole minutes,
// rounding down. It is for display; totals go through Compute.
func SessionMinutes(durationSeconds int) int {
	return durationSeconds / 60
}

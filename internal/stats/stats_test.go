package stats

import (
	"testing"

	"github.com/iammorganparry/focus/internal/model"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		tasks []model.Task
		want  Summary
	}{
		{
			name:  "nil list",
			tasks: nil,
			want:  Summary{},
		},
		{
			name:  "empty list",
			tasks: []model.Task{},
			want:  Summary{},
		},
		{
			name: "mixed tasks",
			tasks: []model.Task{
				{ID: "a", Completed: true, TargetSessions: 1, CompletedSessions: 2},
				{ID: "b", TargetSessions: 1, CompletedSessions: 1},
				{ID: "c", Completed: true, TargetSessions: 1},
				{ID: "d", TargetSessions: 1},
			},
			want: Summary{CompletedSessions: 3, FocusMinutes: 75, CompletedTasks: 2, TotalTasks: 4},
		},
		{
			name: "sessions beyond target still count",
			tasks: []model.Task{
				{ID: "a", TargetSessions: 1, CompletedSessions: 4},
			},
			want: Summary{CompletedSessions: 4, FocusMinutes: 100, TotalTasks: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.tasks, 25*60); got != tt.want {
				t.Errorf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSessionMinutes(t *testing.T) {
	if got := SessionMinutes(1500); got != 25 {
		t.Errorf("SessionMinutes(1500) = %d, want 25", got)
	}
	if got := SessionMinutes(90); got != 1 {
		t.Errorf("SessionMinutes(90) = %d, want 1", got)
	}
}

func TestComputeKeepsPartialMinutes(t *testing.T) {
	tests := []struct {
		name     string
		sessions int
		seconds  int
		want     int
	}{
		{"two 90s sessions", 2, 90, 3},
		{"three 90s sessions", 3, 90, 4},
		{"twenty 3s sessions", 20, 3, 1},
		{"one 3s session", 1, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := []model.Task{{ID: "a", TargetSessions: 1, CompletedSessions: tt.sessions}}
			if got := Compute(tasks, tt.seconds).FocusMinutes; got != tt.want {
				t.Errorf("FocusMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

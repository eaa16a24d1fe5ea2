package api

import (
	"net/http"

	"github.com/iammorganparry/focus/internal/app"
	"github.com/iammorganparry/focus/internal/model"
	"github.com/iammorganparry/focus/internal/session"
	"github.com/iammorganparry/focus/internal/stats"
)

type startSessionRequest struct {
	TaskID string `json:"taskId"`
}

// sessionResponse is a snapshot plus the derived display fields.
type sessionResponse struct {
	model.Snapshot
	Clock     string      `json:"clock"`
	Progress  float64     `json:"progress"`
	BoundTask *model.Task `json:"boundTask,omitempty"`
}

type SessionHandler struct {
	app  *app.App
	loop *app.Loop
}

func NewSessionHandler(a *app.App, loop *app.Loop) *SessionHandler {
	return &SessionHandler{app: a, loop: loop}
}

// Get handles GET /session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, nil)
}

// Start handles POST /session/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, r, func() error { return h.app.StartSession(req.TaskID) })
}

// Pause handles POST /session/pause
func (h *SessionHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() error { h.app.PauseSession(); return nil })
}

// Resume handles POST /session/resume
func (h *SessionHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() error { h.app.ResumeSession(); return nil })
}

// Toggle handles POST /session/toggle
func (h *SessionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() error { h.app.TogglePause(); return nil })
}

// Stop handles POST /session/stop
func (h *SessionHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func() error { h.app.StopSession(); return nil })
}

// Stats handles GET /stats
func (h *SessionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var summary stats.Summary
	if !run(w, r, h.loop, func() { summary = h.app.Stats() }) {
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// respond applies op (if any) on the loop and writes the resulting session.
func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, op func() error) {
	var (
		resp sessionResponse
		err  error
	)
	if !run(w, r, h.loop, func() {
		if op != nil {
			err = op()
		}
		resp = h.snapshot()
	}) {
		return
	}
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SessionHandler) snapshot() sessionResponse {
	snap := h.app.Session()
	resp := sessionResponse{
		Snapshot: snap,
		Clock:    session.FormatClock(snap.Remaining),
		Progress: session.Progress(snap.Remaining, snap.Duration),
	}
	if task, ok := h.app.BoundTask(); ok {
		resp.BoundTask = &task
	}
	return resp
}

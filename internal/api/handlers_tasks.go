package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iammorganparry/focus/internal/app"
	"github.com/iammorganparry/focus/internal/model"
)

type createTaskRequest struct {
	Text string `json:"text"`
}

type TaskHandler struct {
	app  *app.App
	loop *app.Loop
}

func NewTaskHandler(a *app.App, loop *app.Loop) *TaskHandler {
	return &TaskHandler{app: a, loop: loop}
}

// List handles GET /tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	var list []model.Task
	if !run(w, r, h.loop, func() { list = h.app.Tasks() }) {
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Create handles POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		task model.Task
		err  error
	)
	if !run(w, r, h.loop, func() { task, err = h.app.AddTask(req.Text) }) {
		return
	}
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// Toggle handles POST /tasks/{id}/toggle. Toggling an unknown id succeeds
// with no body, like Delete.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		task  model.Task
		found bool
		err   error
	)
	if !run(w, r, h.loop, func() {
		err = h.app.ToggleTask(id)
		task, found = h.app.Task(id)
	}) {
		return
	}
	if err != nil {
		writeAppError(w, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}. Deleting an unknown id succeeds.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var err error
	if !run(w, r, h.loop, func() { err = h.app.DeleteTask(id) }) {
		return
	}
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// run executes fn on the event loop. It writes a 503 and reports false when
// the loop is gone or the request was cancelled first.
func run(w http.ResponseWriter, r *http.Request, loop *app.Loop, fn func()) bool {
	if err := loop.Do(r.Context(), fn); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return false
	}
	return true
}

package api

import (
	"net/http"

	"github.com/iammorganparry/focus/internal/app"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping() error
}

type serviceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status string       `json:"status"`
	Loop   serviceCheck `json:"loop"`
	DB     serviceCheck `json:"db"`
}

type HealthHandler struct {
	loop *app.Loop
	db   Pinger
}

func NewHealthHandler(loop *app.Loop, db Pinger) *HealthHandler {
	return &HealthHandler{loop: loop, db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Loop: serviceCheck{Status: "ok"}, DB: serviceCheck{Status: "ok"}}

	if err := h.loop.Do(r.Context(), func() {}); err != nil {
		resp.Loop = serviceCheck{Status: "error", Message: err.Error()}
		resp.Status = "degraded"
	}

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			resp.DB = serviceCheck{Status: "error", Message: err.Error()}
			resp.Status = "degraded"
		}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/iammorganparry/focus/internal/session"
	"github.com/iammorganparry/focus/internal/tasks"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tasks.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrInvalidTarget):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrNotIdle):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeAppError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

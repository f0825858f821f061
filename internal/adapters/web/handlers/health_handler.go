package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/duskboard/internal/core/services/poller"
)

// PollStatusSource reports the poller's health.
type PollStatusSource interface {
	Status() poller.Status
}

type HealthHandler struct {
	Poller PollStatusSource
}

func NewHealthHandler(p PollStatusSource) *HealthHandler {
	return &HealthHandler{Poller: p}
}

// HandleHealthz is a liveness probe; the body carries the poll status.
func (h *HealthHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{"status": "ok"}
	if h.Poller != nil {
		body["poller"] = h.Poller.Status()
	}
	writeJSON(w, http.StatusOK, body)
}

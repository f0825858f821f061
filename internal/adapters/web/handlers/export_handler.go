package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
	"github.com/lcalzada-xor/duskboard/internal/core/services/export"
)

// ExportHandler exports archived samples
type ExportHandler struct {
	Storage ports.Storage
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(storage ports.Storage) *ExportHandler {
	return &ExportHandler{Storage: storage}
}

// HandleExport serves ?format=csv|json&since=RFC3339&limit=n
func (h *ExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	filter, err := parseSampleFilter(q.Get("since"), q.Get("limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	if h.Storage == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history archive disabled"})
		return
	}

	samples, err := h.Storage.ListSamples(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename=duskboard_history."+string(format))
	if err := export.Write(w, format, samples); err != nil {
		log.Printf("%s export error: %v", format, err)
	}
}

func parseSampleFilter(since, limit string) (domain.SampleFilter, error) {
	var f domain.SampleFilter
	if since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return f, fmt.Errorf("%w: since: %v", domain.ErrInvalidField, err)
		}
		f.Since = t
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return f, fmt.Errorf("%w: limit %q", domain.ErrInvalidField, limit)
		}
		f.Limit = n
	}
	return f, nil
}

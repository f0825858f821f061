package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
)

// PDFRenderer turns a report into PDF bytes.
type PDFRenderer interface {
	ExportDashboard(report domain.Report) ([]byte, error)
}

// ReportHandler handles report generation
type ReportHandler struct {
	Dashboards ports.DashboardReader
	History    ports.HistoryReader
	Storage    ports.Storage
	Settings   ports.SettingsService
	PDF        PDFRenderer
}

// NewReportHandler creates a new ReportHandler. storage and settings may be nil.
func NewReportHandler(dashboards ports.DashboardReader, history ports.HistoryReader, storage ports.Storage, settings ports.SettingsService, pdf PDFRenderer) *ReportHandler {
	return &ReportHandler{
		Dashboards: dashboards,
		History:    history,
		Storage:    storage,
		Settings:   settings,
		PDF:        pdf,
	}
}

// HandlePDF renders the latest dashboard as a PDF download.
func (h *ReportHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	d, ok := h.Dashboards.Latest()
	if !ok {
		writeError(w, domain.ErrNoDashboard)
		return
	}
	state := h.History.State()

	report := domain.Report{
		ID:          uuid.NewString(),
		Title:       defaultTitle,
		GeneratedAt: time.Now(),
		Dashboard:   d,
		Hourly:      state.Hourly,
		Samples:     state.Samples,
	}
	if h.Settings != nil {
		if doc, err := h.Settings.Current(); err == nil {
			if t := doc.Text("website.appearance.custom_title"); t != "" {
				report.Title = t
			}
		}
	}
	if h.Storage != nil {
		if n, err := h.Storage.CountSamples(r.Context()); err == nil {
			report.Archived = n
		} else {
			log.Printf("Failed to count archived samples: %v", err)
		}
	}

	data, err := h.PDF.ExportDashboard(report)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=duskboard_report_%s.pdf", report.GeneratedAt.Format("20060102_1504")))
	w.Write(data)
}

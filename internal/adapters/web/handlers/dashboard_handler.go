package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/lcalzada-xor/duskboard/internal/adapters/web/templates"
	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
)

const defaultTitle = "OwO Dusk Dashboard"

var dashboardPage = template.Must(template.New("dashboard").Parse(templates.DashboardHTML))

// DashboardHandler serves the page and the read-only dashboard APIs.
type DashboardHandler struct {
	Dashboards ports.DashboardReader
	History    ports.HistoryReader
	Snapshots  ports.SnapshotReader
	Settings   ports.SettingsService
}

func NewDashboardHandler(dashboards ports.DashboardReader, history ports.HistoryReader, snapshots ports.SnapshotReader, settings ports.SettingsService) *DashboardHandler {
	return &DashboardHandler{
		Dashboards: dashboards,
		History:    history,
		Snapshots:  snapshots,
		Settings:   settings,
	}
}

type pageData struct {
	Title         string
	Accent        string
	RefreshMillis int64
	Text          map[string]string
	Panels        []domain.PanelView
}

// HandleIndex renders the dashboard page.
func (h *DashboardHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:         defaultTitle,
		Accent:        "#70af87",
		RefreshMillis: 10000,
		Text:          map[string]string{},
	}
	if d, ok := h.Dashboards.Latest(); ok {
		for target, v := range d.Text {
			data.Text[string(target)] = v
		}
	}
	if h.Settings != nil {
		data.Panels = h.Settings.PanelIndex()
		if doc, err := h.Settings.Current(); err == nil {
			if t := doc.Text("website.appearance.custom_title"); t != "" {
				data.Title = t
			}
			if c := doc.Text("website.appearance.accent_color"); domain.IsValidHexColor(c) {
				data.Accent = c
			}
			if secs := doc.Int("website.refreshInterval"); secs > 0 {
				data.RefreshMillis = secs * 1000
			}
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardPage.Execute(w, data); err != nil {
		log.Printf("Failed to render dashboard page: %v", err)
	}
}

// HandleDashboard returns the latest projected dashboard.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.Dashboards.Latest()
	if !ok {
		writeError(w, domain.ErrNoDashboard)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HandleHistory returns a copy of the rolling history.
func (h *DashboardHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.History.State())
}

// HandleStats returns the last raw snapshot.
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.Snapshots.Latest()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no snapshot polled yet"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

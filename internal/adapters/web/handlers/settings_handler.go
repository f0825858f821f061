package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
)

// MaxImportSize bounds settings uploads.
const MaxImportSize = 1 << 20

// SettingsHandler exposes the settings store.
type SettingsHandler struct {
	Service ports.SettingsService
	Now     func() time.Time
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{Service: service, Now: time.Now}
}

// HandleGet returns the whole settings document.
func (h *SettingsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Service.Current()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// HandleReplace saves a full document (the general settings form).
func (h *SettingsHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImportSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidField, err))
		return
	}
	doc, err := domain.ParseSettings(body)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidField, err))
		return
	}
	if err := h.Service.Replace(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// HandleReload re-reads the settings from the bot.
func (h *SettingsHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Reset(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func (h *SettingsHandler) HandleListPanels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"panels": h.Service.PanelIndex()})
}

// HandleGetPanel renders one sub-form. Browsers get the bare markup.
func (h *SettingsHandler) HandleGetPanel(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.RenderPanel(domain.PanelKind(mux.Vars(r)["kind"]))
	if err != nil {
		writeError(w, err)
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, view.Markup)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleApplyPanel applies a submitted form-encoded sub-form.
func (h *SettingsHandler) HandleApplyPanel(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImportSize)
	if err := r.ParseForm(); err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidField, err))
		return
	}
	if err := h.Service.ApplyPanel(r.Context(), domain.PanelKind(mux.Vars(r)["kind"]), r.PostForm); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// HandleExport downloads the settings as a JSON attachment.
func (h *SettingsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	name, body, err := h.Service.Export(r.Context(), h.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(body)
}

// HandleImport accepts a raw JSON body or a multipart upload in field "file".
func (h *SettingsHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	data, err := readUpload(w, r)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err))
		return
	}
	missing, err := h.Service.Import(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}
	if missing == nil {
		missing = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "imported", "missing": missing})
}

func readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImportSize)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(MaxImportSize); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return io.ReadAll(file)
	}
	return io.ReadAll(r.Body)
}

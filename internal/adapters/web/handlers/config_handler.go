package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/ports"
)

// ServiceInfo is the static part of the served configuration.
type ServiceInfo struct {
	BotURL         string   `json:"botUrl"`
	HistoryLength  int      `json:"historyLength"`
	HourlyReset    string   `json:"hourlyReset"`
	ImportMode     string   `json:"importMode"`
	MountedTargets []string `json:"mountedTargets"`
}

// IntervalSource reports the poll interval in force.
type IntervalSource interface {
	Interval() time.Duration
}

// ConfigHandler handles service configuration
type ConfigHandler struct {
	Persistence ports.PersistenceController
	Poller      IntervalSource
	Info        ServiceInfo
}

// NewConfigHandler creates a new ConfigHandler. persistence may be nil when
// archiving is disabled.
func NewConfigHandler(persistence ports.PersistenceController, poller IntervalSource, info ServiceInfo) *ConfigHandler {
	return &ConfigHandler{
		Persistence: persistence,
		Poller:      poller,
		Info:        info,
	}
}

// HandleGetConfig returns current configuration
func (h *ConfigHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	config := map[string]interface{}{
		"persistenceEnabled": h.Persistence != nil && h.Persistence.IsEnabled(),
		"service":            h.Info,
	}
	if h.Poller != nil {
		config["pollIntervalSeconds"] = h.Poller.Interval().Seconds()
	}
	writeJSON(w, http.StatusOK, config)
}

// HandleTogglePersistence toggles sample archiving
func (h *ConfigHandler) HandleTogglePersistence(w http.ResponseWriter, r *http.Request) {
	if h.Persistence == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "history archive disabled"})
		return
	}
	enabled, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "enabled must be true or false"})
		return
	}
	h.Persistence.SetEnabled(enabled)

	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "persistence_updated", "enabled": enabled})
}

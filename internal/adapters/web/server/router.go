package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/duskboard/internal/adapters/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultRateLimit = 30

func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	perMinute := s.RateLimit
	if perMinute <= 0 {
		perMinute = defaultRateLimit
	}
	settingsLimiter := middleware.NewRateLimiter(perMinute, time.Minute)
	limited := func(h http.HandlerFunc) http.Handler {
		return middleware.RateLimitMiddleware(settingsLimiter)(h)
	}

	r.HandleFunc("/", s.DashboardHandler.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.WSManager.HandleWebSocket)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/healthz", s.HealthHandler.HandleHealthz).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Dashboard
	api.HandleFunc("/dashboard", s.DashboardHandler.HandleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/history", s.DashboardHandler.HandleHistory).Methods(http.MethodGet)
	api.HandleFunc("/history/export", s.ExportHandler.HandleExport).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.DashboardHandler.HandleStats).Methods(http.MethodGet)
	api.HandleFunc("/report.pdf", s.ReportHandler.HandlePDF).Methods(http.MethodGet)

	// Settings
	api.HandleFunc("/settings", s.SettingsHandler.HandleGet).Methods(http.MethodGet)
	api.Handle("/settings", limited(s.SettingsHandler.HandleReplace)).Methods(http.MethodPut)
	api.Handle("/settings/reload", limited(s.SettingsHandler.HandleReload)).Methods(http.MethodPost)
	api.HandleFunc("/settings/export", s.SettingsHandler.HandleExport).Methods(http.MethodGet)
	api.Handle("/settings/import", limited(s.SettingsHandler.HandleImport)).Methods(http.MethodPost)
	api.HandleFunc("/settings/panels", s.SettingsHandler.HandleListPanels).Methods(http.MethodGet)
	api.HandleFunc("/settings/panels/{kind}", s.SettingsHandler.HandleGetPanel).Methods(http.MethodGet)
	api.Handle("/settings/panels/{kind}", limited(s.SettingsHandler.HandleApplyPanel)).Methods(http.MethodPost)

	// Service
	api.HandleFunc("/config", s.ConfigHandler.HandleGetConfig).Methods(http.MethodGet)
	api.Handle("/config/persistence", limited(s.ConfigHandler.HandleTogglePersistence)).Methods(http.MethodPost)
	api.HandleFunc("/audit-logs", s.AuditHandler.HandleGetLogs).Methods(http.MethodGet)

	return r
}

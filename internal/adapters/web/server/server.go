package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/duskboard/internal/adapters/web/websocket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr      string
	WSManager *websocket.WSManager

	DashboardHandler *handlers.DashboardHandler
	SettingsHandler  *handlers.SettingsHandler
	ExportHandler    *handlers.ExportHandler
	ReportHandler    *handlers.ReportHandler
	ConfigHandler    *handlers.ConfigHandler
	AuditHandler     *handlers.AuditHandler
	HealthHandler    *handlers.HealthHandler

	// RateLimit is the number of settings changes allowed per client per minute.
	RateLimit int

	srv *http.Server
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	// "duskboard-server" is the name of the operation (span)
	return otelhttp.NewHandler(SetupRoutes(s), "duskboard-server")
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown implementation
	go func() {
		<-ctx.Done()
		log.Println("Web Server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Web Server shutdown error: %v", err)
		}
	}()

	log.Printf("Web server listening on %s", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

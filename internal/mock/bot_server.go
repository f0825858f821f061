package mock

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

const maxSettingsBody = 1 << 20

// BotServer imitates the bot's local HTTP API.
type BotServer struct {
	gen      *DataGenerator
	password string

	mu       sync.RWMutex
	settings domain.Settings
	saves    int
}

func NewBotServer(gen *DataGenerator, password string) *BotServer {
	return &BotServer{
		gen:      gen,
		password: password,
		settings: domain.DefaultSettings(),
	}
}

func (b *BotServer) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/stats", b.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/api/config", b.handleConfig).Methods(http.MethodGet)
	r.HandleFunc("/api/saveThings", b.handleSave).Methods(http.MethodPost)
	return r
}

func (b *BotServer) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.gen.Snapshot())
}

func (b *BotServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("password") != b.password {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, b.Settings())
}

func (b *BotServer) handleSave(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSettingsBody))
	if err != nil {
		http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
		return
	}
	doc, err := domain.ParseSettings(data)
	if err != nil {
		http.Error(w, "invalid settings", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	b.settings = doc
	b.saves++
	b.mu.Unlock()

	slog.Debug("Mock bot stored settings", "keys", len(doc))
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Settings returns a copy of the last saved document.
func (b *BotServer) Settings() domain.Settings {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.settings.Clone()
}

func (b *BotServer) Saves() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.saves
}

// Simulate steps the generator every interval until ctx is done.
func (b *BotServer) Simulate(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	hourly := time.NewTicker(time.Hour)
	defer hourly.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.gen.Step(ctx)
		case <-hourly.C:
			b.gen.MarkHour()
		}
	}
}

// Run serves the mock API on addr until ctx is cancelled.
func (b *BotServer) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           b.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Mock bot listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Mock bot failed to encode response", "error", err)
	}
}

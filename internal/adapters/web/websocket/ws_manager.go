package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/core/ports"
	"github.com/lcalzada-xor/duskboard/internal/telemetry"
)

// Message types pushed to browsers.
const (
	TypeDashboard = "dashboard"
	TypeToast     = "toast"
	TypeLog       = "log"
)

const writeWait = 5 * time.Second

type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WSManager fans dashboards, toasts and log lines out to every connected
// browser. It implements ports.DashboardSink and ports.Notifier.
type WSManager struct {
	upgrader websocket.Upgrader
	latest   ports.DashboardReader
	Clients  map[*websocket.Conn]string
	mu       sync.Mutex
}

var (
	_ ports.DashboardSink = (*WSManager)(nil)
	_ ports.Notifier      = (*WSManager)(nil)
)

// NewWSManager creates a manager. Requests without an Origin header are
// always accepted; otherwise the origin must be listed. latest may be nil.
func NewWSManager(allowedOrigins []string, latest ports.DashboardReader) *WSManager {
	m := &WSManager{
		latest:  latest,
		Clients: make(map[*websocket.Conn]string),
	}
	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return m
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		// Allow same-origin (no Origin header)
		if origin == "" {
			return true
		}
		if origin == "http://"+r.Host || origin == "https://"+r.Host {
			return true
		}
		for _, a := range allowed {
			if origin == a {
				return true
			}
		}

		log.Printf("WebSocket: Rejected origin: %s", origin)
		return false
	}
}

func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	id := uuid.NewString()

	// The newest dashboard goes out before the client joins the broadcast set.
	if m.latest != nil {
		if d, ok := m.latest.Latest(); ok {
			if data, err := json.Marshal(WSMessage{Type: TypeDashboard, Payload: d}); err == nil {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					conn.Close()
					return
				}
			}
		}
	}

	m.mu.Lock()
	m.Clients[conn] = id
	count := len(m.Clients)
	m.mu.Unlock()
	telemetry.WSClients.Set(float64(count))

	log.Printf("WebSocket connected: client=%s, remote=%s", id, r.RemoteAddr)

	// Clean up on disconnect
	go func() {
		defer conn.Close()
		defer func() {
			m.mu.Lock()
			delete(m.Clients, conn)
			count := len(m.Clients)
			m.mu.Unlock()
			telemetry.WSClients.Set(float64(count))
			log.Printf("WebSocket disconnected: client=%s", id)
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

// ClientCount returns the number of connected browsers.
func (m *WSManager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Clients)
}

// PublishDashboard pushes a freshly rendered dashboard.
func (m *WSManager) PublishDashboard(ctx context.Context, d domain.Dashboard) {
	m.broadcastMessage(WSMessage{Type: TypeDashboard, Payload: d})
}

// Notify shows a toast on every connected browser.
func (m *WSManager) Notify(ctx context.Context, toast domain.Toast) {
	m.broadcastMessage(WSMessage{Type: TypeToast, Payload: toast})
}

// BroadcastLog sends a log message to all connected clients
func (m *WSManager) BroadcastLog(message string, level string) {
	payload := map[string]string{
		"message": message,
		"level":   level,
	}
	m.broadcastMessage(WSMessage{Type: TypeLog, Payload: payload})
}

// broadcastMessage must not log while holding mu: the log handler feeds
// back into BroadcastLog.
func (m *WSManager) broadcastMessage(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	m.mu.Lock()
	for conn := range m.Clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(m.Clients, conn)
		}
	}
	count := len(m.Clients)
	m.mu.Unlock()
	telemetry.WSClients.Set(float64(count))
}

// Package handlers holds the small HTTP-adjacent surfaces a runnable
// repository needs beyond the pure pipeline packages: the JSON API and
// thread-page handlers and the websocket push of digest-change events.
package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local archive viewer, not a public multi-tenant service
	},
}

// DigestChangedEvent is broadcast whenever a scheduled re-digest run
// produces a Merkle root different from the previously recorded one.
type DigestChangedEvent struct {
	Type      string    `json:"type"`
	List      string    `json:"list"`
	YearMonth string    `json:"year_month"`
	RootHash  string    `json:"root_hash"`
	Timestamp time.Time `json:"timestamp"`
}

// WebSocketHandler broadcasts digest-change events to connected browser
// clients viewing the archive.
type WebSocketHandler struct {
	logger  arbor.ILogger
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// NewWebSocketHandler creates an empty hub.
func NewWebSocketHandler(logger arbor.ILogger) *WebSocketHandler {
	return &WebSocketHandler{
		logger:  logger,
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleWebSocket upgrades the connection and registers it for broadcasts.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to upgrade websocket connection")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Info().Int("clients", count).Msg("websocket client connected")

	// Drain and discard client frames; this hub is broadcast-only. When the
	// connection closes, deregister it.
	go func() {
		defer h.removeClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *WebSocketHandler) removeClient(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// BroadcastDigestChanged pushes a digest-change event to every connected
// client.
func (h *WebSocketHandler) BroadcastDigestChanged(event DigestChangedEvent) {
	event.Type = "digest_changed"

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Warn().Err(err).Msg("failed to broadcast digest change, dropping client")
			go h.removeClient(conn)
		}
	}
}

// ClientCount returns the number of currently connected clients.
func (h *WebSocketHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

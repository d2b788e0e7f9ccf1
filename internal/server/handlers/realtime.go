package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dreamdwell/dreamdwell/internal/server/events"
	ws "github.com/dreamdwell/dreamdwell/internal/server/websocket"
)

// HandleWebSocket handles WebSocket connections at /api/v1/updates/ws.
func (h *Handlers) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(uuid.NewString(), h.Hub, conn)
	if !h.Hub.Register(client) {
		_ = conn.Close()
		return
	}

	client.Start()

	h.Broker.Publish(events.ClientConnected, map[string]any{
		"transport": "websocket",
		"client_id": client.ID(),
	})
}

// HandleSSE handles Server-Sent Events at /api/v1/updates/stream.
func (h *Handlers) HandleSSE(w http.ResponseWriter, r *http.Request) {
	h.Streams.ServeHTTP(w, r)
}

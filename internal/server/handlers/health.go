package handlers

import (
	"net/http"

	"github.com/dreamdwell/dreamdwell/internal/server/response"
)

// HandleHealth handles GET /health and GET /api/v1/health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "dreamdwell-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. The server is ready once the
// catalog has been synced at least once.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if h.Client.SyncedAt().IsZero() {
		response.Abort(w, response.CodeUnavailable, "", "Catalog has not been synced yet")
		return
	}

	response.OK(w, map[string]any{
		"status":            "ready",
		"synced_at":         h.Client.SyncedAt().Time,
		"cache":             h.Results.Stats(),
		"websocket_clients": h.Hub.ClientCount(),
		"sse_clients":       h.Streams.ClientCount(),
	})
}

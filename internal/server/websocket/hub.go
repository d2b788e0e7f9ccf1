// Package websocket provides WebSocket support for catalog updates.
package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Message is the JSON frame sent to socket clients.
type Message struct {
	Seq       uint64    `json:"seq"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Hub tracks connected clients and fans messages out to them. A client
// whose buffer is full is disconnected rather than allowed to stall the
// rest.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	done    chan struct{}
	logger  *zerolog.Logger
}

// NewHub creates a hub. Run must be called for it to shut down cleanly.
func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Run blocks until ctx is cancelled, then disconnects every client and
// refuses new ones.
func (h *Hub) Run(ctx context.Context) {
	<-ctx.Done()

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.drop(c)
	}
	close(h.done)
	h.logger.Debug().Msg("WebSocket hub shut down")
}

func (h *Hub) closed() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Register adds a client. It reports false when the hub has shut down.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed() {
		return false
	}
	h.clients[c] = struct{}{}
	h.logger.Info().
		Str("client_id", c.id).
		Int("total_clients", len(h.clients)).
		Msg("WebSocket client connected")
	return true
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	h.drop(c)
	h.logger.Info().
		Str("client_id", c.id).
		Int("total_clients", len(h.clients)).
		Msg("WebSocket client disconnected")
}

// drop requires h.mu.
func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
}

// Broadcast queues m on every client.
func (h *Hub) Broadcast(m Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- m:
		default:
			h.logger.Warn().Str("client_id", c.id).Msg("WebSocket client too slow, disconnecting")
			h.drop(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Package sse provides Server-Sent Events support for catalog updates.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"
)

const (
	// clientBuffer is how many events may queue for one stream before
	// further events are skipped for it.
	clientBuffer = 64
	// historySize is how many recent events are kept for Last-Event-ID
	// replay.
	historySize = 128
)

// Event is one SSE frame. ID, when numeric, is used for replay.
type Event struct {
	Event string `json:"event,omitempty"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data"`
}

// Broadcaster serves an event stream to any number of HTTP clients.
type Broadcaster struct {
	// Heartbeat is the interval of comment frames sent to idle streams.
	// Zero disables them.
	Heartbeat time.Duration

	mu      sync.Mutex
	streams map[chan Event]struct{}
	history []Event
	done    chan struct{}
	logger  *zerolog.Logger
}

// NewBroadcaster creates a broadcaster with a 30 second heartbeat.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		Heartbeat: 30 * time.Second,
		streams:   make(map[chan Event]struct{}),
		done:      make(chan struct{}),
		logger:    logger,
	}
}

// Run blocks until ctx is cancelled, then ends every stream.
func (b *Broadcaster) Run(ctx context.Context) {
	<-ctx.Done()

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.streams {
		delete(b.streams, ch)
		close(ch)
	}
	close(b.done)
	b.logger.Debug().Msg("SSE broadcaster shut down")
}

// Broadcast records e for replay and queues it on every stream.
func (b *Broadcaster) Broadcast(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.history) == historySize {
		b.history = b.history[1:]
	}
	b.history = append(b.history, e)

	for ch := range b.streams {
		select {
		case ch <- e:
		default:
			b.logger.Warn().Str("event", e.Event).Msg("SSE client buffer full, event skipped")
		}
	}
}

// ClientCount returns the number of open streams.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.streams)
}

// attach registers a stream and returns the history after lastID. It
// returns a nil channel once the broadcaster has shut down.
func (b *Broadcaster) attach(lastID string) (chan Event, []Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	select {
	case <-b.done:
		return nil, nil
	default:
	}

	ch := make(chan Event, clientBuffer)
	b.streams[ch] = struct{}{}
	b.logger.Info().Int("total_clients", len(b.streams)).Msg("SSE client connected")
	return ch, b.since(lastID)
}

func (b *Broadcaster) detach(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.streams[ch]; ok {
		delete(b.streams, ch)
		close(ch)
		b.logger.Info().Int("total_clients", len(b.streams)).Msg("SSE client disconnected")
	}
}

// since requires b.mu.
func (b *Broadcaster) since(lastID string) []Event {
	last, err := strconv.ParseUint(lastID, 10, 64)
	if err != nil {
		return nil
	}
	var out []Event
	for _, e := range b.history {
		if id, err := strconv.ParseUint(e.ID, 10, 64); err == nil && id > last {
			out = append(out, e)
		}
	}
	return out
}

// ServeHTTP streams events to one client until it disconnects or the
// broadcaster shuts down. A Last-Event-ID header replays missed events
// still held in history.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	// streams outlive the server's write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	ch, missed := b.attach(r.Header.Get("Last-Event-ID"))
	if ch == nil {
		http.Error(w, "Shutting down", http.StatusServiceUnavailable)
		return
	}
	defer b.detach(ch)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")

	send := func(e Event) bool {
		data, err := json.Marshal(e.Data)
		if err != nil {
			b.logger.Error().Err(err).Str("event", e.Event).Msg("Failed to marshal SSE event data")
			return true
		}
		if err := writeFrame(w, e.Event, e.ID, data); err != nil {
			return false
		}
		return rc.Flush() == nil
	}

	if !send(Event{Event: "connected", Data: map[string]any{
		"message":   "Connected to dreamdwell catalog updates",
		"timestamp": utc.Now(),
	}}) {
		return
	}
	for _, e := range missed {
		if !send(e) {
			return
		}
	}

	var heartbeat <-chan time.Time
	if b.Heartbeat > 0 {
		t := time.NewTicker(b.Heartbeat)
		defer t.Stop()
		heartbeat = t.C
	}

	for {
		select {
		case e, ok := <-ch:
			if !ok || !send(e) {
				return
			}
		case <-heartbeat:
			if _, err := io.WriteString(w, ": ping\n\n"); err != nil || rc.Flush() != nil {
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}

func writeFrame(w io.Writer, event, id string, data []byte) error {
	if event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
			return err
		}
	}
	if id != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", id); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

// Package adapters connects the realtime transports to the event broker.
package adapters

import (
	"strconv"

	"github.com/dreamdwell/dreamdwell/internal/server/events"
	"github.com/dreamdwell/dreamdwell/internal/server/sse"
	ws "github.com/dreamdwell/dreamdwell/internal/server/websocket"
)

// SSE forwards events to every stream client. The event sequence becomes
// the SSE id.
func SSE(b *sse.Broadcaster) events.Subscriber {
	return events.SubscriberFunc(func(e events.Event) error {
		b.Broadcast(sse.Event{
			ID:    strconv.FormatUint(e.Seq, 10),
			Event: string(e.Type),
			Data:  e.Data,
		})
		return nil
	})
}

// WebSocket forwards events to every socket client.
func WebSocket(hub *ws.Hub) events.Subscriber {
	return events.SubscriberFunc(func(e events.Event) error {
		hub.Broadcast(ws.Message{
			Seq:       e.Seq,
			Type:      string(e.Type),
			Timestamp: e.Timestamp,
			Data:      e.Data,
		})
		return nil
	})
}

// Package events fans catalog changes out to the realtime transports.
//
// Client hooks publish to a Broker, and every transport (WebSocket, SSE)
// subscribes to the broker through an adapter.
package events

import "time"

// EventType names a catalog event on the wire.
type EventType string

const (
	PropertyAdded   EventType = "property.added"
	PropertyUpdated EventType = "property.updated"
	PropertyRemoved EventType = "property.removed"

	SyncCompleted EventType = "sync.completed"
	SyncFailed    EventType = "sync.failed"

	ClientConnected EventType = "client.connected"
)

// Event is one published change. Seq increases by one per Publish and lets
// stream clients detect gaps.
type Event struct {
	Seq       uint64    `json:"seq"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Subscriber consumes events. Send must not block.
type Subscriber interface {
	Send(Event) error
	Close() error
}

// SubscriberFunc turns a function into a Subscriber with nothing to close.
type SubscriberFunc func(Event) error

// Send calls f.
func (f SubscriberFunc) Send(e Event) error { return f(e) }

// Close does nothing.
func (SubscriberFunc) Close() error { return nil }

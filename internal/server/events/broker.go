package events

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"
)

// QueueSize bounds the events waiting for delivery.
const QueueSize = 256

// Broker fans published events out to every subscriber from a single
// goroutine, so each subscriber sees events in publish order.
type Broker struct {
	queue  chan Event
	seq    atomic.Uint64
	nextID uint64
	mu     sync.RWMutex
	subs   map[uint64]Subscriber
	logger *zerolog.Logger
}

// NewBroker creates a broker. Call Run to start delivery.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		queue:  make(chan Event, QueueSize),
		subs:   make(map[uint64]Subscriber),
		logger: logger,
	}
}

// Run delivers events until ctx is cancelled, then closes every subscriber.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for id, sub := range b.subs {
				_ = sub.Close()
				delete(b.subs, id)
			}
			b.mu.Unlock()
			b.logger.Debug().Msg("Event broker shut down")
			return
		case e := <-b.queue:
			b.deliver(e)
		}
	}
}

func (b *Broker) deliver(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if err := sub.Send(e); err != nil {
			b.logger.Warn().Err(err).
				Str("event_type", string(e.Type)).
				Uint64("seq", e.Seq).
				Msg("Subscriber rejected event")
		}
	}
	b.logger.Debug().
		Str("event_type", string(e.Type)).
		Uint64("seq", e.Seq).
		Int("subscribers", len(b.subs)).
		Msg("Event delivered")
}

// Publish stamps and queues an event. It never blocks: when the queue is
// full the event is dropped and logged.
func (b *Broker) Publish(eventType EventType, data any) {
	e := Event{
		Seq:       b.seq.Add(1),
		Type:      eventType,
		Timestamp: utc.Now().Time,
		Data:      data,
	}
	select {
	case b.queue <- e:
	default:
		b.logger.Warn().
			Str("event_type", string(eventType)).
			Uint64("seq", e.Seq).
			Msg("Event queue full, event dropped")
	}
}

// Subscribe adds sub. The returned func removes and closes it; calling it
// more than once is harmless.
func (b *Broker) Subscribe(sub Subscriber) (cancel func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[id] = sub
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		s, ok := b.subs[id]
		delete(b.subs, id)
		b.mu.Unlock()
		if ok {
			_ = s.Close()
		}
	}
}

// SubscriberCount reports how many subscribers are registered.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

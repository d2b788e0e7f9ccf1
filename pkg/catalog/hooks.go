package catalog

import (
	"sync"

	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// ChangeKind identifies which mutation produced a Change.
type ChangeKind string

// Change kinds, one per Store mutation.
const (
	Replaced ChangeKind = "replaced"
	Appended ChangeKind = "appended"
	Updated  ChangeKind = "updated"
	Removed  ChangeKind = "removed"
)

// Change describes one successful mutation.
type Change struct {
	Kind ChangeKind

	// Index is the affected position, -1 for Replaced.
	Index int

	// Record is the appended or updated record, or the removed one.
	Record properties.Property

	// Snapshot is the catalog after the change. It is read-only.
	Snapshot []properties.Property

	Version uint64
}

// Subscriber is called synchronously after each change.
type Subscriber func(Change)

// hooks manages change callbacks
type hooks struct {
	mu   sync.RWMutex
	next int
	subs map[int]Subscriber
	// order keeps delivery in registration order
	order []int
}

func newHooks() *hooks {
	return &hooks{subs: make(map[int]Subscriber)}
}

func (h *hooks) add(fn Subscriber) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	h.subs[id] = fn
	h.order = append(h.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *hooks) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, id)
	for i, v := range h.order {
		if v == id {
			h.order = append(h.order[:i:i], h.order[i+1:]...)
			break
		}
	}
}

// publish delivers c outside of the lock so subscribers may read the store
// or unsubscribe.
func (h *hooks) publish(c Change) {
	h.mu.RLock()
	fns := make([]Subscriber, 0, len(h.order))
	for _, id := range h.order {
		fns = append(fns, h.subs[id])
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}

package remote

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// Memory is an in-process store of record. It backs offline sessions and
// tests, and can be told to fail specific operations.
type Memory struct {
	mu       sync.Mutex
	records  []properties.Property
	nextID   int
	failures map[string][]error
	calls    []Call
	block    chan struct{}
}

// Call records one request received by a Memory client.
type Call struct {
	Op      string
	ID      string
	Payload properties.Payload
}

var _ Client = (*Memory)(nil)

// NewMemory creates a Memory client holding records. Records without an ID
// are assigned one.
func NewMemory(records ...properties.Property) *Memory {
	m := &Memory{failures: make(map[string][]error)}
	for _, r := range records {
		r = r.Clone()
		if !r.Persisted() {
			r.ID = m.allocID()
		} else if n, err := strconv.Atoi(r.ID); err == nil && n > m.nextID {
			m.nextID = n
		}
		m.records = append(m.records, r)
	}
	return m
}

// FailNext queues err for the next call of op. A nil err queues a generic
// 500 RemoteError.
func (m *Memory) FailNext(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		err = errors.NewRemoteError(op, "memory", http.StatusInternalServerError, "injected failure")
	}
	m.failures[op] = append(m.failures[op], err)
}

// Block makes every following call wait until the returned release func is
// called or the call's context ends.
func (m *Memory) Block() (release func()) {
	ch := make(chan struct{})
	var once sync.Once
	m.mu.Lock()
	m.block = ch
	m.mu.Unlock()
	return func() {
		once.Do(func() {
			m.mu.Lock()
			if m.block == ch {
				m.block = nil
			}
			m.mu.Unlock()
			close(ch)
		})
	}
}

// Records returns a copy of the stored records.
func (m *Memory) Records() []properties.Property {
	m.mu.Lock()
	defer m.mu.Unlock()
	return properties.CloneAll(m.records)
}

// Calls returns the requests received so far.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// List implements Client.
func (m *Memory) List(ctx context.Context) ([]properties.Property, error) {
	if err := m.begin(ctx, Call{Op: OpList}); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := properties.CloneAll(m.records)
	if out == nil {
		out = []properties.Property{}
	}
	return out, nil
}

// Create implements Client.
func (m *Memory) Create(ctx context.Context, payload properties.Payload) (properties.Property, error) {
	if err := m.begin(ctx, Call{Op: OpCreate, Payload: payload}); err != nil {
		return properties.Property{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record := payload.Property()
	record.ID = m.allocID()
	m.records = append(m.records, record)
	return record.Clone(), nil
}

// Update implements Client.
func (m *Memory) Update(ctx context.Context, id string, payload properties.Payload) (properties.Property, error) {
	if err := m.begin(ctx, Call{Op: OpUpdate, ID: id, Payload: payload}); err != nil {
		return properties.Property{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return properties.Property{}, errors.NewRemoteError(OpUpdate, editPath+id, http.StatusNotFound, "property not found")
	}
	record := payload.Property()
	record.ID = id
	m.records[i] = record
	return record.Clone(), nil
}

// Delete implements Client.
func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := m.begin(ctx, Call{Op: OpDelete, ID: id}); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return errors.NewRemoteError(OpDelete, deletePath+id, http.StatusNotFound, "property not found")
	}
	m.records = append(m.records[:i:i], m.records[i+1:]...)
	return nil
}

// begin records the call, waits on Block and pops an injected failure.
func (m *Memory) begin(ctx context.Context, call Call) error {
	m.mu.Lock()
	m.calls = append(m.calls, call)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return errors.WrapRemote(call.Op, "memory", ctx.Err())
		}
	}
	if err := ctx.Err(); err != nil {
		return errors.WrapRemote(call.Op, "memory", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if queued := m.failures[call.Op]; len(queued) > 0 {
		m.failures[call.Op] = queued[1:]
		return queued[0]
	}
	return nil
}

func (m *Memory) indexOf(id string) int {
	for i, r := range m.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (m *Memory) allocID() string {
	m.nextID++
	return strconv.Itoa(m.nextID)
}

// Package catalog holds the authoritative, ordered list of properties known to
// a session and notifies subscribers whenever it changes.
//
// Snapshots are copy-on-write: every mutation installs a new backing slice, so
// a slice returned by Snapshot is never modified afterwards.
package catalog

import (
	"sync"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

const resource = "catalog"

// Store owns the catalog.
type Store struct {
	mu       sync.RWMutex
	records  []properties.Property
	version  uint64
	syncedAt utc.Time
	logger   *zerolog.Logger

	hooks *hooks
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecords seeds the store without notifying subscribers.
func WithRecords(records []properties.Property) Option {
	return func(s *Store) {
		s.records = properties.CloneAll(records)
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		records: []properties.Property{},
		logger:  logging.Default(),
		hooks:   newHooks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReplaceAll sets the catalog to records, preserving their order.
func (s *Store) ReplaceAll(records []properties.Property) {
	next := properties.CloneAll(records)
	if next == nil {
		next = []properties.Property{}
	}

	s.mu.Lock()
	s.records = next
	s.version++
	s.syncedAt = utc.Now()
	change := s.change(Replaced, -1, properties.Property{})
	s.mu.Unlock()

	s.logger.Debug().Int("properties", len(next)).Msg("Catalog replaced")
	s.hooks.publish(change)
}

// Append adds a persisted record at the end of the catalog.
func (s *Store) Append(record properties.Property) error {
	if !record.Persisted() {
		return errors.NewValidationError("id", record.ID, "record must be persisted before it is appended")
	}
	record = record.Clone()

	s.mu.Lock()
	next := make([]properties.Property, len(s.records), len(s.records)+1)
	copy(next, s.records)
	next = append(next, record)
	s.records = next
	s.version++
	change := s.change(Appended, len(next)-1, record)
	s.mu.Unlock()

	s.logger.Debug().Str("property_id", record.ID).Int("index", change.Index).Msg("Property appended")
	s.hooks.publish(change)
	return nil
}

// ReplaceAt overwrites the record at index, keeping its position.
func (s *Store) ReplaceAt(index int, record properties.Property) error {
	record = record.Clone()

	s.mu.Lock()
	if err := errors.CheckIndex(resource, index, len(s.records)); err != nil {
		s.mu.Unlock()
		return err
	}
	next := make([]properties.Property, len(s.records))
	copy(next, s.records)
	next[index] = record
	s.records = next
	s.version++
	change := s.change(Updated, index, record)
	s.mu.Unlock()

	s.logger.Debug().Str("property_id", record.ID).Int("index", index).Msg("Property replaced")
	s.hooks.publish(change)
	return nil
}

// RemoveAt deletes the record at index, shifting later records left.
func (s *Store) RemoveAt(index int) error {
	s.mu.Lock()
	if err := errors.CheckIndex(resource, index, len(s.records)); err != nil {
		s.mu.Unlock()
		return err
	}
	removed := s.records[index]
	next := make([]properties.Property, 0, len(s.records)-1)
	next = append(next, s.records[:index]...)
	next = append(next, s.records[index+1:]...)
	s.records = next
	s.version++
	change := s.change(Removed, index, removed)
	s.mu.Unlock()

	s.logger.Debug().Str("property_id", removed.ID).Int("index", index).Msg("Property removed")
	s.hooks.publish(change)
	return nil
}

// Snapshot returns the current ordered records. Callers must treat the result
// as read-only.
func (s *Store) Snapshot() []properties.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// At returns a copy of the record at index.
func (s *Store) At(index int) (properties.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := errors.CheckIndex(resource, index, len(s.records)); err != nil {
		return properties.Property{}, err
	}
	return s.records[index].Clone(), nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Version increases by one on every successful mutation.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// SyncedAt returns the time of the last ReplaceAll, zero if never synced.
func (s *Store) SyncedAt() utc.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syncedAt
}

// Subscribe registers fn for every future change and returns a function that
// removes the subscription.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	return s.hooks.add(fn)
}

// change must be called with s.mu held.
func (s *Store) change(kind ChangeKind, index int, record properties.Property) Change {
	return Change{
		Kind:     kind,
		Index:    index,
		Record:   record,
		Snapshot: s.records,
		Version:  s.version,
	}
}

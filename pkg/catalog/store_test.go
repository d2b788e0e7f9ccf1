package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

func seed() []properties.Property {
	return []properties.Property{
		{ID: "1", Name: "Canal View", BedCount: 2, Address: "Main St", Area: "5"},
		{ID: "2", Name: "Oak House", BedCount: 3, Address: "Oak Ave", Area: "5"},
		{ID: "3", Name: "Loft", BedCount: 1, Address: "Mall Road", Area: "3"},
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(WithLogger(logging.NewNopLogger()), WithRecords(seed()))
}

func TestReplaceAll(t *testing.T) {
	s := New(WithLogger(logging.NewNopLogger()))
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.SyncedAt().IsZero())

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.ReplaceAll(seed())
	assert.Equal(t, seed(), s.Snapshot())
	assert.False(t, s.SyncedAt().IsZero())
	assert.Equal(t, uint64(1), s.Version())

	require.Len(t, changes, 1)
	assert.Equal(t, Replaced, changes[0].Kind)
	assert.Equal(t, -1, changes[0].Index)
	assert.Len(t, changes[0].Snapshot, 3)

	s.ReplaceAll(nil)
	assert.NotNil(t, s.Snapshot())
	assert.Equal(t, 0, s.Len())
}

func TestAppend(t *testing.T) {
	s := newStore(t)

	err := s.Append(properties.Property{Name: "Draft"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, 3, s.Len())

	require.NoError(t, s.Append(properties.Property{ID: "4", Name: "New"}))
	assert.Equal(t, 4, s.Len())

	last, err := s.At(3)
	require.NoError(t, err)
	assert.Equal(t, "4", last.ID)
}

func TestReplaceAt(t *testing.T) {
	s := newStore(t)

	updated := properties.Property{ID: "2", Name: "Oak House Renovated", BedCount: 4}
	require.NoError(t, s.ReplaceAt(1, updated))

	snap := s.Snapshot()
	assert.Equal(t, "1", snap[0].ID)
	assert.Equal(t, updated, snap[1])
	assert.Equal(t, "3", snap[2].ID)
}

func TestRemoveAt(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.RemoveAt(0))
	assert.Equal(t, []string{"2", "3"}, []string{s.Snapshot()[0].ID, s.Snapshot()[1].ID})

	require.NoError(t, s.RemoveAt(1))
	require.NoError(t, s.RemoveAt(0))
	assert.Equal(t, 0, s.Len())
}

func TestOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 3, 4, 100} {
		s := newStore(t)
		before := s.Snapshot()
		version := s.Version()

		notified := false
		s.Subscribe(func(Change) { notified = true })

		err := s.ReplaceAt(idx, properties.Property{ID: "x"})
		assert.True(t, errors.IsIndexOutOfRange(err), "ReplaceAt(%d)", idx)

		err = s.RemoveAt(idx)
		assert.True(t, errors.IsIndexOutOfRange(err), "RemoveAt(%d)", idx)

		_, err = s.At(idx)
		assert.True(t, errors.IsIndexOutOfRange(err), "At(%d)", idx)

		assert.Equal(t, before, s.Snapshot())
		assert.Equal(t, version, s.Version())
		assert.False(t, notified)
	}
}

func TestSnapshotIsNotAliased(t *testing.T) {
	s := newStore(t)
	snap := s.Snapshot()
	want := properties.CloneAll(snap)

	require.NoError(t, s.ReplaceAt(0, properties.Property{ID: "9"}))
	require.NoError(t, s.RemoveAt(1))
	require.NoError(t, s.Append(properties.Property{ID: "10"}))

	assert.Equal(t, want, snap)
}

func TestInputIsCopied(t *testing.T) {
	records := seed()
	records[0].Images = []properties.ImageRef{"a.jpg"}

	s := New(WithLogger(logging.NewNopLogger()))
	s.ReplaceAll(records)
	records[0].Name = "mutated"
	records[0].Images[0] = "mutated.jpg"

	got, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, "Canal View", got.Name)
	assert.Equal(t, properties.ImageRef("a.jpg"), got.Images[0])
}

func TestSubscribe(t *testing.T) {
	s := newStore(t)

	var kinds []ChangeKind
	unsubscribe := s.Subscribe(func(c Change) {
		kinds = append(kinds, c.Kind)
		// subscribers may read the store
		assert.Equal(t, len(c.Snapshot), s.Len())
	})

	require.NoError(t, s.Append(properties.Property{ID: "4"}))
	require.NoError(t, s.ReplaceAt(0, properties.Property{ID: "1"}))
	require.NoError(t, s.RemoveAt(3))
	s.ReplaceAll(seed())

	assert.Equal(t, []ChangeKind{Appended, Updated, Removed, Replaced}, kinds)

	unsubscribe()
	unsubscribe()
	s.ReplaceAll(nil)
	assert.Len(t, kinds, 4)
}

func TestSubscribeOrder(t *testing.T) {
	s := newStore(t)

	var order []int
	s.Subscribe(func(Change) { order = append(order, 1) })
	unsub := s.Subscribe(func(Change) { order = append(order, 2) })
	s.Subscribe(func(Change) { order = append(order, 3) })
	unsub()

	s.ReplaceAll(seed())
	assert.Equal(t, []int{1, 3}, order)
}

func TestConcurrentReads(t *testing.T) {
	s := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
			_ = s.Len()
		}()
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = s.Append(properties.Property{ID: "x"})
			} else {
				s.ReplaceAll(seed())
			}
		}(i)
	}
	wg.Wait()
	assert.GreaterOrEqual(t, s.Len(), 3)
}

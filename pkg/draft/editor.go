package draft

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell/pkg/catalog"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
	"github.com/dreamdwell/dreamdwell/pkg/remote"
)

// Target identifies the catalog record being edited.
type Target struct {
	Index int
	ID    string
}

// Editor owns the single draft of a session. Submitting stores the draft
// remotely and then applies the returned record to the catalog.
type Editor struct {
	mu      sync.Mutex
	draft   Draft
	target  *Target
	pending bool

	store  *catalog.Store
	remote remote.Client
	logger *zerolog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEditor creates an Editor with an empty draft.
func NewEditor(store *catalog.Store, client remote.Client, opts ...Option) *Editor {
	e := &Editor{
		store:  store,
		remote: client,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartCreate clears the draft and the edit target.
func (e *Editor) StartCreate() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		return errors.ErrSubmitInProgress
	}
	e.reset()
	return nil
}

// StartEdit loads record into the draft and targets catalog position index.
func (e *Editor) StartEdit(index int, record properties.Property) error {
	if err := errors.CheckIndex("catalog", index, e.store.Len()); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		return errors.ErrSubmitInProgress
	}
	e.draft = FromProperty(record)
	e.target = &Target{Index: index, ID: record.ID}
	e.logger.Debug().Int("index", index).Str("property_id", record.ID).Msg("Editing property")
	return nil
}

// SetField updates one scalar field. Values are validated on submit.
func (e *Editor) SetField(f Field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		return errors.ErrSubmitInProgress
	}
	return e.draft.set(f, value)
}

// AddImages appends refs in the given order.
func (e *Editor) AddImages(refs ...properties.ImageRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		return errors.ErrSubmitInProgress
	}
	e.draft.Images = append(e.draft.Images, refs...)
	return nil
}

// RemoveImageAt removes the image at index.
func (e *Editor) RemoveImageAt(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		return errors.ErrSubmitInProgress
	}
	if err := errors.CheckIndex("images", index, len(e.draft.Images)); err != nil {
		return err
	}
	images := make([]properties.ImageRef, 0, len(e.draft.Images)-1)
	images = append(images, e.draft.Images[:index]...)
	e.draft.Images = append(images, e.draft.Images[index+1:]...)
	return nil
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

// Target returns the edit target, or false when creating.
func (e *Editor) Target() (Target, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.target == nil {
		return Target{}, false
	}
	return *e.target, true
}

// Pending reports whether a submit is in flight.
func (e *Editor) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Submit validates the draft and stores it remotely: an update when a target
// is set, a create otherwise. On success the returned record is written to the
// catalog and the draft is cleared. On failure the draft is left as it was.
func (e *Editor) Submit(ctx context.Context) (properties.Property, error) {
	e.mu.Lock()
	if e.pending {
		e.mu.Unlock()
		return properties.Property{}, errors.ErrSubmitInProgress
	}
	payload, err := e.draft.Payload()
	if err != nil {
		e.mu.Unlock()
		return properties.Property{}, err
	}
	var target *Target
	if e.target != nil {
		t := *e.target
		target = &t
	}
	e.pending = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.pending = false
		e.mu.Unlock()
	}()

	ctx = logging.WithOperation(logging.Seed(ctx, e.logger), "submit")
	if target != nil {
		ctx = logging.WithProperty(ctx, target.ID)
	}
	logger := logging.FromContext(ctx)

	var record properties.Property
	if target != nil {
		record, err = e.remote.Update(ctx, target.ID, payload)
	} else {
		record, err = e.remote.Create(ctx, payload)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Submit failed")
		return properties.Property{}, err
	}

	if target != nil {
		err = e.replace(*target, record)
	} else {
		err = e.store.Append(record)
	}
	if err != nil {
		return properties.Property{}, err
	}

	e.mu.Lock()
	e.reset()
	e.mu.Unlock()

	e.logger.Debug().Str("property_id", record.ID).Bool("update", target != nil).Msg("Submitted property")
	return record, nil
}

// replace writes record over the edit target. The target is located by id
// again because a sync may have moved it while the call was in flight. A
// target that is gone leaves the catalog unchanged.
func (e *Editor) replace(target Target, record properties.Property) error {
	index := target.Index
	if current, err := e.store.At(index); err != nil || current.ID != target.ID {
		index = -1
		for i, p := range e.store.Snapshot() {
			if p.ID == target.ID {
				index = i
				break
			}
		}
		if index < 0 {
			e.logger.Warn().Str("property_id", target.ID).Msg("Edited property no longer in catalog")
			return nil
		}
	}
	return e.store.ReplaceAt(index, record)
}

func (e *Editor) reset() {
	e.draft = Draft{}
	e.target = nil
}

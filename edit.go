package dreamdwell

import (
	"context"

	"github.com/dreamdwell/dreamdwell/pkg/draft"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
	"github.com/dreamdwell/dreamdwell/pkg/remote"
)

// Editor creates, edits and deletes properties. Writes go to the remote
// store first and reach the catalog only once the remote store accepted them.
type Editor interface {
	StartCreate() error
	StartEdit(index int) error
	SetField(field draft.Field, value string) error
	AddImages(refs ...properties.ImageRef) error
	RemoveImageAt(index int) error
	Draft() draft.Draft
	Target() (draft.Target, bool)
	Pending() bool
	Submit(ctx context.Context) (properties.Property, error)
	Delete(ctx context.Context, index int) error
}

// StartCreate implements Editor.
func (c *client) StartCreate() error {
	if err := c.requireSignIn(); err != nil {
		return err
	}
	return c.editor.StartCreate()
}

// StartEdit loads the catalog record at index into the draft.
func (c *client) StartEdit(index int) error {
	if err := c.requireSignIn(); err != nil {
		return err
	}
	record, err := c.store.At(index)
	if err != nil {
		return err
	}
	return c.editor.StartEdit(index, record)
}

// SetField implements Editor.
func (c *client) SetField(field draft.Field, value string) error {
	return c.editor.SetField(field, value)
}

// AddImages implements Editor.
func (c *client) AddImages(refs ...properties.ImageRef) error {
	return c.editor.AddImages(refs...)
}

// RemoveImageAt implements Editor.
func (c *client) RemoveImageAt(index int) error {
	return c.editor.RemoveImageAt(index)
}

// Draft implements Editor.
func (c *client) Draft() draft.Draft {
	return c.editor.Draft()
}

// Target implements Editor.
func (c *client) Target() (draft.Target, bool) {
	return c.editor.Target()
}

// Pending implements Editor.
func (c *client) Pending() bool {
	return c.editor.Pending()
}

// Submit implements Editor.
func (c *client) Submit(ctx context.Context) (properties.Property, error) {
	if err := c.requireSignIn(); err != nil {
		return properties.Property{}, err
	}
	record, err := c.editor.Submit(ctx)
	if err != nil {
		return properties.Property{}, err
	}
	c.logger.Info().Str("property_id", record.ID).Str("name", record.Name).Msg("Property saved")
	return record, nil
}

// Delete removes the catalog record at index from the remote store and then
// from the catalog. A single attempt is made.
func (c *client) Delete(ctx context.Context, index int) error {
	if err := c.requireSignIn(); err != nil {
		return err
	}
	record, err := c.store.At(index)
	if err != nil {
		return err
	}

	ctx = logging.Seed(ctx, c.logger)
	ctx = logging.WithProperty(logging.WithOperation(ctx, remote.OpDelete), record.ID)
	if err := c.remote.Delete(ctx, record.ID); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Delete failed")
		return err
	}

	// The catalog may have moved while the call was in flight.
	if current, err := c.store.At(index); err != nil || current.ID != record.ID {
		index = c.indexOf(record.ID)
		if index < 0 {
			return nil
		}
	}
	if err := c.store.RemoveAt(index); err != nil {
		return errors.WrapResource("remove", "property", record.ID, err)
	}
	c.logger.Info().Str("property_id", record.ID).Msg("Property deleted")
	return nil
}

func (c *client) indexOf(id string) int {
	for i, p := range c.store.Snapshot() {
		if p.ID == id {
			return i
		}
	}
	return -1
}

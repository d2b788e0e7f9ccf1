package dreamdwell

import (
	"github.com/agentstation/utc"

	"github.com/dreamdwell/dreamdwell/pkg/catalog"
	"github.com/dreamdwell/dreamdwell/pkg/filter"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// Catalog provides copy-on-read access to the catalog.
type Catalog interface {
	// Catalog returns the full ordered catalog.
	Catalog() []properties.Property

	// Property returns the record at index.
	Property(index int) (properties.Property, error)

	// Updater refreshes the catalog from the remote store
	Updater

	// SyncedAt returns when the catalog was last replaced.
	SyncedAt() utc.Time
}

// Catalog returns a copy of the current catalog.
func (c *client) Catalog() []properties.Property {
	return properties.CloneAll(c.store.Snapshot())
}

// Property returns a copy of the record at index.
func (c *client) Property(index int) (properties.Property, error) {
	return c.store.At(index)
}

// SyncedAt implements Catalog.
func (c *client) SyncedAt() utc.Time {
	return c.store.SyncedAt()
}

// onChange fires the property hooks and re-derives the displayed subset
// after every store mutation.
func (c *client) onChange(change catalog.Change) {
	c.mu.Lock()
	if change.Version <= c.displayedVersion {
		c.mu.Unlock()
		return
	}
	previous := c.last
	c.last = change.Snapshot
	c.displayedVersion = change.Version
	c.displayed = filter.Apply(change.Snapshot, c.criteria)
	displayed, criteria := c.displayed, c.criteria
	c.mu.Unlock()

	switch change.Kind {
	case catalog.Replaced:
		c.hooks.triggerCatalogReplace(previous, change.Snapshot)
	case catalog.Appended:
		c.hooks.triggerAdded(change.Record)
	case catalog.Updated:
		if change.Index < len(previous) {
			c.hooks.triggerUpdated(previous[change.Index], change.Record)
		}
	case catalog.Removed:
		c.hooks.triggerRemoved(change.Record)
	}
	c.hooks.triggerDisplayed(displayed, criteria)
}

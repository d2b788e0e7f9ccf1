package dreamdwell

import (
	"github.com/dreamdwell/dreamdwell/pkg/filter"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// Searcher derives the displayed subset of the catalog.
type Searcher interface {
	// Search makes criteria active and returns the matching records.
	Search(criteria filter.Criteria) []properties.Property

	// ClearSearch removes every constraint and returns the full catalog.
	ClearSearch() []properties.Property

	// Criteria returns the active criteria.
	Criteria() filter.Criteria

	// Displayed returns the records matching the active criteria.
	Displayed() []properties.Property
}

// Search implements Searcher. The catalog itself is not changed.
func (c *client) Search(criteria filter.Criteria) []properties.Property {
	c.mu.Lock()
	c.criteria = criteria
	c.displayed = filter.Apply(c.last, criteria)
	displayed := c.displayed
	c.mu.Unlock()

	c.logger.Debug().Str("criteria", criteria.String()).Int("matches", len(displayed)).Msg("Search applied")
	c.hooks.triggerDisplayed(displayed, criteria)
	return properties.CloneAll(displayed)
}

// ClearSearch implements Searcher.
func (c *client) ClearSearch() []properties.Property {
	return c.Search(filter.Criteria{})
}

// Criteria implements Searcher.
func (c *client) Criteria() filter.Criteria {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.criteria
}

// Displayed implements Searcher.
func (c *client) Displayed() []properties.Property {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return properties.CloneAll(c.displayed)
}

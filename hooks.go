package dreamdwell

import (
	"sync"

	"github.com/dreamdwell/dreamdwell/pkg/filter"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// Hook function types for catalog events
type (
	// PropertyAddedHook is called when a property is added to the catalog
	PropertyAddedHook func(property properties.Property)

	// PropertyUpdatedHook is called when a property is changed in the catalog
	PropertyUpdatedHook func(old, new properties.Property)

	// PropertyRemovedHook is called when a property is removed from the catalog
	PropertyRemovedHook func(property properties.Property)

	// DisplayedHook is called with the new displayed subset and the criteria
	// that produced it
	DisplayedHook func(displayed []properties.Property, criteria filter.Criteria)
)

// Hooks provides event callback registration.
type Hooks interface {
	OnPropertyAdded(PropertyAddedHook)
	OnPropertyUpdated(PropertyUpdatedHook)
	OnPropertyRemoved(PropertyRemovedHook)
	OnDisplayedChanged(DisplayedHook)
}

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu                sync.RWMutex
	onPropertyAdded   []PropertyAddedHook
	onPropertyUpdated []PropertyUpdatedHook
	onPropertyRemoved []PropertyRemovedHook
	onDisplayed       []DisplayedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnPropertyAdded registers a callback for when properties are added
func (h *hooks) OnPropertyAdded(fn PropertyAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPropertyAdded = append(h.onPropertyAdded, fn)
}

// OnPropertyUpdated registers a callback for when properties are updated
func (h *hooks) OnPropertyUpdated(fn PropertyUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPropertyUpdated = append(h.onPropertyUpdated, fn)
}

// OnPropertyRemoved registers a callback for when properties are removed
func (h *hooks) OnPropertyRemoved(fn PropertyRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPropertyRemoved = append(h.onPropertyRemoved, fn)
}

// OnDisplayedChanged registers a callback for when the displayed subset changes
func (h *hooks) OnDisplayedChanged(fn DisplayedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDisplayed = append(h.onDisplayed, fn)
}

func (h *hooks) triggerAdded(p properties.Property) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onPropertyAdded {
		hook(p.Clone())
	}
}

func (h *hooks) triggerUpdated(old, new properties.Property) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onPropertyUpdated {
		hook(old.Clone(), new.Clone())
	}
}

func (h *hooks) triggerRemoved(p properties.Property) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onPropertyRemoved {
		hook(p.Clone())
	}
}

func (h *hooks) triggerDisplayed(displayed []properties.Property, criteria filter.Criteria) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onDisplayed {
		hook(properties.CloneAll(displayed), criteria)
	}
}

// triggerCatalogReplace compares old and new catalogs by ID and triggers
// the added, updated and removed hooks.
func (h *hooks) triggerCatalogReplace(oldCatalog, newCatalog []properties.Property) {
	oldByID := make(map[string]properties.Property, len(oldCatalog))
	for _, p := range oldCatalog {
		oldByID[p.ID] = p
	}
	newByID := make(map[string]struct{}, len(newCatalog))
	for _, p := range newCatalog {
		newByID[p.ID] = struct{}{}
	}

	for _, p := range newCatalog {
		if old, exists := oldByID[p.ID]; exists {
			if !old.Equal(p) {
				h.triggerUpdated(old, p)
			}
		} else {
			h.triggerAdded(p)
		}
	}

	for _, p := range oldCatalog {
		if _, exists := newByID[p.ID]; !exists {
			h.triggerRemoved(p)
		}
	}
}

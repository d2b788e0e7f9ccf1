package dreamdwell

import (
	"context"
	"time"

	"github.com/agentstation/utc"

	"github.com/dreamdwell/dreamdwell/pkg/logging"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// Updater refreshes the catalog from the remote store.
type Updater interface {
	// Sync replaces the catalog with the remote listing.
	Sync(ctx context.Context) (*SyncResult, error)
}

// SyncResult summarises how a Sync changed the catalog.
type SyncResult struct {
	Total    int           `json:"total" yaml:"total"`
	Added    []string      `json:"added,omitempty" yaml:"added,omitempty"`
	Updated  []string      `json:"updated,omitempty" yaml:"updated,omitempty"`
	Removed  []string      `json:"removed,omitempty" yaml:"removed,omitempty"`
	SyncedAt utc.Time      `json:"synced_at" yaml:"synced_at"`
	Elapsed  time.Duration `json:"elapsed" yaml:"elapsed"`
}

// HasChanges reports whether any record was added, updated or removed.
func (r *SyncResult) HasChanges() bool {
	return len(r.Added)+len(r.Updated)+len(r.Removed) > 0
}

// Sync fetches the remote listing and replaces the catalog with it. On
// failure the catalog is left unchanged.
func (c *client) Sync(ctx context.Context) (*SyncResult, error) {
	ctx = logging.WithOperation(logging.Seed(ctx, c.logger), "sync")
	logger := logging.FromContext(ctx)

	start := time.Now()
	previous := c.store.Snapshot()

	records, err := c.remote.List(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Sync failed")
		return nil, err
	}

	c.store.ReplaceAll(records)

	result := diff(previous, records)
	result.SyncedAt = c.store.SyncedAt()
	result.Elapsed = time.Since(start)

	if result.HasChanges() {
		logger.Info().
			Int("added", len(result.Added)).
			Int("updated", len(result.Updated)).
			Int("removed", len(result.Removed)).
			Msg("Catalog changes detected")
	}
	logger.Debug().Int("total", result.Total).Dur("elapsed", result.Elapsed).Msg("Sync completed")
	return result, nil
}

// diff compares two catalogs by ID.
func diff(oldCatalog, newCatalog []properties.Property) *SyncResult {
	result := &SyncResult{Total: len(newCatalog)}

	oldByID := make(map[string]properties.Property, len(oldCatalog))
	for _, p := range oldCatalog {
		oldByID[p.ID] = p
	}
	seen := make(map[string]struct{}, len(newCatalog))
	for _, p := range newCatalog {
		seen[p.ID] = struct{}{}
		old, exists := oldByID[p.ID]
		switch {
		case !exists:
			result.Added = append(result.Added, p.ID)
		case !old.Equal(p):
			result.Updated = append(result.Updated, p.ID)
		}
	}
	for _, p := range oldCatalog {
		if _, exists := seen[p.ID]; !exists {
			result.Removed = append(result.Removed, p.ID)
		}
	}
	return result
}

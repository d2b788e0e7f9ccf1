package handlers

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/dreamdwell/dreamdwell/internal/server/events"
	"github.com/dreamdwell/dreamdwell/internal/server/response"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/filter"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// IndexedProperty is a catalog record with its catalog position. Positions
// are what the get endpoint and the CLI edit and delete commands address.
type IndexedProperty struct {
	Index    int                 `json:"index"`
	Property properties.Property `json:"property"`
}

// PropertyList is the body of a list response.
type PropertyList struct {
	Properties []IndexedProperty `json:"properties"`
	Total      int               `json:"total"`
	Criteria   filter.Criteria   `json:"criteria"`
}

// HandleListProperties handles GET /api/v1/properties.
//
// The location, rooms and area query parameters narrow the listing the same
// way a search does. Results are cached per criteria until the catalog
// changes.
func (h *Handlers) HandleListProperties(w http.ResponseWriter, r *http.Request) {
	criteria := filter.ParseCriteria(r.URL.Query())

	if cached, found := h.Results.Get(criteria); found {
		response.OK(w, cached)
		return
	}

	result := PropertyList{Properties: []IndexedProperty{}, Criteria: criteria}
	for i, p := range h.Client.Catalog() {
		if criteria.Matches(p) {
			result.Properties = append(result.Properties, IndexedProperty{Index: i, Property: p})
		}
	}
	result.Total = len(result.Properties)

	h.Results.Put(criteria, result)
	response.OK(w, result)
}

// HandleGetProperty handles GET /api/v1/properties/{index}.
func (h *Handlers) HandleGetProperty(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		response.FromError(w, errors.NewValidationError("index", raw, "must be an integer"))
		return
	}

	p, err := h.Client.Property(index)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, IndexedProperty{Index: index, Property: p})
}

// HandleSync handles POST /api/v1/sync. It refreshes the catalog from the
// remote store and announces the outcome to realtime subscribers.
func (h *Handlers) HandleSync(w http.ResponseWriter, r *http.Request) {
	result, err := h.Client.Sync(r.Context())
	if err != nil {
		h.Broker.Publish(events.SyncFailed, map[string]any{"error": err.Error()})
		response.FromError(w, err)
		return
	}

	h.Results.Invalidate()
	h.Broker.Publish(events.SyncCompleted, result)

	response.OK(w, result)
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, _ *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	var syncedAt *time.Time
	if at := h.Client.SyncedAt(); !at.IsZero() {
		syncedAt = &at.Time
	}

	response.OK(w, map[string]any{
		"runtime": map[string]any{
			"uptime_seconds": int64(time.Since(h.Started).Seconds()),
			"goroutines":     runtime.NumGoroutine(),
			"memory_mb":      memStats.Alloc / 1024 / 1024,
		},
		"catalog": map[string]any{
			"properties_total": len(h.Client.Catalog()),
			"synced_at":        syncedAt,
		},
		"events": map[string]any{
			"subscribers": h.Broker.SubscriberCount(),
		},
		"realtime": map[string]any{
			"websocket_clients": h.Hub.ClientCount(),
			"sse_clients":       h.Streams.ClientCount(),
		},
		"cache": h.Results.Stats(),
	})
}

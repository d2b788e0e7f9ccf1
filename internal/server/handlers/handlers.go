// Package handlers provides HTTP request handlers for the catalog API.
package handlers

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell"
	"github.com/dreamdwell/dreamdwell/internal/server/cache"
	"github.com/dreamdwell/dreamdwell/internal/server/events"
	"github.com/dreamdwell/dreamdwell/internal/server/sse"
	ws "github.com/dreamdwell/dreamdwell/internal/server/websocket"
)

// Deps is everything the handlers read from or publish to.
type Deps struct {
	Client   dreamdwell.Client
	Results  *cache.Results[PropertyList]
	Broker   *events.Broker
	Hub      *ws.Hub
	Streams  *sse.Broadcaster
	Upgrader websocket.Upgrader
	Logger   *zerolog.Logger
	Started  time.Time
}

// Handlers serves the catalog API over Deps.
type Handlers struct {
	Deps
}

// New returns handlers bound to d.
func New(d Deps) *Handlers {
	return &Handlers{Deps: d}
}

// Package server serves the property catalog over HTTP with realtime
// change notifications over WebSocket and Server-Sent Events.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/dreamdwell/dreamdwell"
	"github.com/dreamdwell/dreamdwell/internal/server/cache"
	"github.com/dreamdwell/dreamdwell/internal/server/events"
	"github.com/dreamdwell/dreamdwell/internal/server/events/adapters"
	"github.com/dreamdwell/dreamdwell/internal/server/handlers"
	"github.com/dreamdwell/dreamdwell/internal/server/sse"
	ws "github.com/dreamdwell/dreamdwell/internal/server/websocket"
	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	client         dreamdwell.Client
	results        *cache.Results[handlers.PropertyList]
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	upgrader       websocket.Upgrader
	logger         *zerolog.Logger
	config         Config
	ctx            context.Context
	cancel         context.CancelFunc
	wg             conc.WaitGroup
	startTime      time.Time
}

// New creates a server for client. Catalog changes made through client are
// published to realtime subscribers once Start has been called.
func New(client dreamdwell.Client, cfg Config, logger *zerolog.Logger) *Server {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = "/api/v1"
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		client:         client,
		results:        cache.New[handlers.PropertyList](cfg.CacheTTL),
		broker:         events.NewBroker(logger),
		wsHub:          ws.NewHub(logger),
		sseBroadcaster: sse.NewBroadcaster(logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		startTime: time.Now(),
	}

	s.connectHooks()
	return s
}

// connectHooks publishes catalog changes to the broker and drops cached
// search results that may no longer be accurate.
func (s *Server) connectHooks() {
	s.client.OnPropertyAdded(func(p properties.Property) {
		s.results.Invalidate()
		s.broker.Publish(events.PropertyAdded, map[string]any{"property": p})
	})

	s.client.OnPropertyUpdated(func(old, updated properties.Property) {
		s.results.Invalidate()
		s.broker.Publish(events.PropertyUpdated, map[string]any{
			"old_property": old,
			"new_property": updated,
		})
	})

	s.client.OnPropertyRemoved(func(p properties.Property) {
		s.results.Invalidate()
		s.broker.Publish(events.PropertyRemoved, map[string]any{"property": p})
	})
}

// Start starts the background services: broker, WebSocket hub, SSE
// broadcaster and, when configured, the periodic sync.
func (s *Server) Start() {
	s.broker.Subscribe(adapters.WebSocket(s.wsHub))
	s.broker.Subscribe(adapters.SSE(s.sseBroadcaster))

	s.goRun(s.broker.Run)
	s.goRun(s.wsHub.Run)
	s.goRun(s.sseBroadcaster.Run)

	if s.config.SyncInterval > 0 {
		s.goRun(s.syncLoop)
	}

	s.logger.Debug().Msg("Background services started")
}

func (s *Server) goRun(fn func(context.Context)) {
	s.wg.Go(func() { fn(s.ctx) })
}

func (s *Server) syncLoop(ctx context.Context) {
	ticker := time.NewTicker(s.config.SyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncOnce(ctx)
		}
	}
}

// syncOnce refreshes the catalog and announces the outcome.
func (s *Server) syncOnce(ctx context.Context) {
	result, err := s.client.Sync(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Msg("Periodic sync failed")
		s.broker.Publish(events.SyncFailed, map[string]any{"error": err.Error()})
		return
	}
	s.results.Invalidate()
	s.broker.Publish(events.SyncCompleted, result)
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Shutdown stops the background services and waits for them until ctx is
// done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Results returns the search result cache.
func (s *Server) Results() *cache.Results[handlers.PropertyList] {
	return s.results
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

// WSHub returns the WebSocket hub.
func (s *Server) WSHub() *ws.Hub {
	return s.wsHub
}

package server

import (
	"net/http"

	"github.com/dreamdwell/dreamdwell/internal/server/handlers"
	"github.com/dreamdwell/dreamdwell/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(handlers.Deps{
		Client:   s.client,
		Results:  s.results,
		Broker:   s.broker,
		Hub:      s.wsHub,
		Streams:  s.sseBroadcaster,
		Upgrader: s.upgrader,
		Logger:   s.logger,
		Started:  s.startTime,
	})

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+prefix+"/ready", h.HandleReady)

	// Catalog
	mux.HandleFunc("GET "+prefix+"/properties", h.HandleListProperties)
	mux.HandleFunc("GET "+prefix+"/properties/{index}", h.HandleGetProperty)
	mux.HandleFunc("POST "+prefix+"/sync", h.HandleSync)
	mux.HandleFunc("GET "+prefix+"/stats", h.HandleStats)

	// Realtime
	mux.HandleFunc("GET "+prefix+"/updates/ws", h.HandleWebSocket)
	mux.HandleFunc("GET "+prefix+"/updates/stream", h.HandleSSE)
}

// applyMiddleware wraps handler with the middleware chain. Recovery is the
// outermost layer.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config
	chain := []func(http.Handler) http.Handler{
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	}

	if cfg.CORSEnabled {
		chain = append(chain, middleware.CORS(cfg.CORSOrigins...))
	}

	if cfg.APIKey != "" {
		chain = append(chain, middleware.Auth(middleware.AuthConfig{
			APIKey:     cfg.APIKey,
			HeaderName: cfg.AuthHeader,
			PublicPaths: []string{
				"/health",
				"/favicon.ico",
				cfg.PathPrefix + "/health",
				cfg.PathPrefix + "/ready",
			},
			QueryPaths: []string{
				cfg.PathPrefix + "/updates/ws",
				cfg.PathPrefix + "/updates/stream",
			},
		}, s.logger))
	}

	if cfg.RateLimit > 0 {
		chain = append(chain, middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, s.logger)))
	}

	return middleware.Chain(chain...)(handler)
}

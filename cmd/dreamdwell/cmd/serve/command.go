// Package serve provides the command that serves the catalog over HTTP.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamdwell/dreamdwell/internal/appcontext"
	"github.com/dreamdwell/dreamdwell/internal/server"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 30 * time.Second

// NewCommand creates the serve command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Short:   "Serve the catalog over HTTP with realtime updates",
		Long: `Serve syncs the catalog from the property API and serves it read-only
over HTTP.

Endpoints (under --prefix):
  GET  /properties           List properties; filter with location, rooms, area
  GET  /properties/{index}   One property by catalog index
  POST /sync                 Refresh the catalog from the property API
  GET  /stats                Server and catalog statistics
  GET  /updates/ws           WebSocket stream of catalog changes
  GET  /updates/stream       Server-Sent Events stream of catalog changes
  GET  /health, /ready       Liveness and readiness probes`,
		Example: `  dreamdwell serve                              # localhost:8080
  dreamdwell serve --port 3000 --api-key s3cret # Require X-API-Key
  dreamdwell serve --cors-origins https://app.example.com
  dreamdwell serve --sync-interval 5m           # Refresh periodically`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configFromFlags(cmd)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", cfg.Addr())
			if err != nil {
				return errors.WrapIO("listen", cfg.Addr(), err)
			}
			return Serve(cmd.Context(), cmd.OutOrStdout(), app, cfg, ln)
		},
	}

	cmd.Flags().IntP("port", "p", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")
	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated, implies --cors)")
	cmd.Flags().String("api-key", "", "Require this key in the X-API-Key header")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", defaults.CacheTTL, "How long search results are cached")
	cmd.Flags().Duration("sync-interval", 0, "Refresh the catalog on this interval (0 to disable)")

	return cmd
}

func configFromFlags(cmd *cobra.Command) (server.Config, error) {
	cfg := server.DefaultConfig()
	flags := cmd.Flags()

	cfg.Port, _ = flags.GetInt("port")
	cfg.Host, _ = flags.GetString("host")
	cfg.PathPrefix, _ = flags.GetString("prefix")
	cfg.CORSEnabled, _ = flags.GetBool("cors")
	cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	cfg.APIKey, _ = flags.GetString("api-key")
	cfg.RateLimit, _ = flags.GetInt("rate-limit")
	cfg.CacheTTL, _ = flags.GetDuration("cache-ttl")
	cfg.SyncInterval, _ = flags.GetDuration("sync-interval")

	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}
	return cfg, cfg.Validate()
}

// Serve runs the catalog server on ln until ctx is cancelled, then drains
// in-flight requests. A failed initial sync is logged and the server starts
// with an empty catalog that reports not ready.
func Serve(ctx context.Context, w io.Writer, app appcontext.Interface, cfg server.Config, ln net.Listener) error {
	logger := app.Logger()

	client, err := app.Client()
	if err != nil {
		_ = ln.Close()
		return err
	}

	if result, err := client.Sync(ctx); err != nil {
		logger.Warn().Err(err).Msg("Initial sync failed; serving an empty catalog")
	} else {
		logger.Info().Int("properties", result.Total).Msg("Catalog synced")
	}

	srv := server.New(client, cfg, logger)
	srv.Start()

	httpServer := &http.Server{
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	logger.Info().
		Str("addr", ln.Addr().String()).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.APIKey != "").
		Int("rate_limit", cfg.RateLimit).
		Dur("sync_interval", cfg.SyncInterval).
		Msg("Starting API server")
	_, _ = fmt.Fprintf(w, "Serving catalog on http://%s%s\n", ln.Addr(), cfg.PathPrefix)

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		if err != nil {
			return errors.WrapIO("serve", ln.Addr().String(), err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// SSE and WebSocket streams end once the background services stop.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Background services did not stop in time")
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.WrapIO("shutdown", ln.Addr().String(), err)
	}

	_, _ = fmt.Fprintln(w, "Server stopped")
	return nil
}

// Package app provides the application context and dependency management
// for the dreamdwell CLI. It centralizes configuration, logging and the
// lazily created catalog client.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/dreamdwell/dreamdwell"
	"github.com/dreamdwell/dreamdwell/internal/appcontext"
	"github.com/dreamdwell/dreamdwell/internal/images"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/remote"
	"github.com/dreamdwell/dreamdwell/pkg/session"
)

// App represents the dreamdwell application with all its dependencies.
type App struct {
	build  appcontext.BuildInfo
	config *Config
	logger *zerolog.Logger
	fs     afero.Fs

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client dreamdwell.Client
}

var _ appcontext.Interface = (*App)(nil)

// New loads configuration and builds the logger for a binary described by
// build.
func New(build appcontext.BuildInfo, opts ...Option) (*App, error) {
	app := &App{
		build: build,
		fs:    afero.NewOsFs(),
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Build describes the running binary.
func (a *App) Build() appcontext.BuildInfo {
	return a.build
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Images returns a loader reading local image files from the app filesystem.
func (a *App) Images() *images.Loader {
	return images.NewLoader(images.WithFs(a.fs), images.WithLogger(a.logger))
}

// Client returns the catalog client, creating it lazily if needed.
// It is safe for concurrent use and only one instance is created.
func (a *App) Client() (dreamdwell.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	opts, err := a.buildClientOptions()
	if err != nil {
		return nil, err
	}
	c, err := dreamdwell.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = c
	return c, nil
}

// Shutdown releases the client, if one was created.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	c := a.client
	a.client = nil
	a.mu.Unlock()

	if c != nil {
		c.Close()
	}
	return nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() ([]dreamdwell.Option, error) {
	theme, err := session.ParseTheme(a.config.Theme)
	if err != nil {
		return nil, errors.NewConfigError("theme", err.Error(), err)
	}

	opts := []dreamdwell.Option{
		dreamdwell.WithLogger(a.logger),
		dreamdwell.WithSession(session.New(session.WithTheme(theme), session.WithLogger(a.logger))),
	}

	if a.config.Offline {
		a.logger.Debug().Msg("Using in-memory property store")
		opts = append(opts, dreamdwell.WithRemote(remote.NewMemory()))
	} else {
		var apiKey *string
		if a.config.APIKey != "" {
			apiKey = &a.config.APIKey
		}
		opts = append(opts, dreamdwell.WithRemoteServer(a.config.BaseURL, apiKey))
		if a.config.Timeout > 0 {
			opts = append(opts, dreamdwell.WithTimeout(a.config.Timeout))
		}
	}

	if a.config.IDToken != "" {
		opts = append(opts, dreamdwell.WithIDToken(a.config.IDToken))
	}

	return opts, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c dreamdwell.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}

// WithFs sets the filesystem image files are read from.
func WithFs(fs afero.Fs) Option {
	return func(a *App) error {
		if fs == nil {
			return errors.NewValidationError("fs", nil, "filesystem cannot be nil")
		}
		a.fs = fs
		return nil
	}
}

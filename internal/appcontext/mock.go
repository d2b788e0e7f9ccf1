package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell"
	"github.com/dreamdwell/dreamdwell/internal/images"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
	"github.com/dreamdwell/dreamdwell/pkg/logging"
)

// Mock is a fixed Interface for command tests. Zero fields fall back to
// a nop logger, the OS filesystem, table output and a "dev" build.
type Mock struct {
	Catalog dreamdwell.Client
	Loader  *images.Loader
	Log     *zerolog.Logger
	Format  string
	Info    BuildInfo
}

var _ Interface = (*Mock)(nil)

// Client returns Catalog, or a config error when none was set.
func (m *Mock) Client() (dreamdwell.Client, error) {
	if m.Catalog == nil {
		return nil, errors.NewConfigError("client", "mock has no client", nil)
	}
	return m.Catalog, nil
}

func (m *Mock) Images() *images.Loader {
	if m.Loader == nil {
		return images.NewLoader()
	}
	return m.Loader
}

func (m *Mock) Logger() *zerolog.Logger {
	if m.Log == nil {
		return logging.NewNopLogger()
	}
	return m.Log
}

func (m *Mock) OutputFormat() string {
	if m.Format == "" {
		return "table"
	}
	return m.Format
}

func (m *Mock) Build() BuildInfo {
	info := m.Info
	if info.Version == "" {
		info.Version = "dev"
	}
	for _, f := range []*string{&info.Commit, &info.Date, &info.BuiltBy} {
		if *f == "" {
			*f = "unknown"
		}
	}
	return info
}

// Package appcontext provides the shared application context interface
// used by all commands. Commands accept this interface rather than the
// concrete App so they can be tested against a Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/dreamdwell/dreamdwell"
	"github.com/dreamdwell/dreamdwell/internal/images"
)

// BuildInfo identifies the running binary. Release builds fill it through
// linker flags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

// Interface is what commands need from the application.
type Interface interface {
	// Client returns the catalog client, creating it on first use.
	Client() (dreamdwell.Client, error)
	// Images resolves --image arguments.
	Images() *images.Loader
	Logger() *zerolog.Logger
	// OutputFormat is one of table, wide, json, yaml or markdown.
	OutputFormat() string
	Build() BuildInfo
}

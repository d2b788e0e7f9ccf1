package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamdwell/dreamdwell/cmd/dreamdwell/cmd/completion"
	"github.com/dreamdwell/dreamdwell/cmd/dreamdwell/cmd/list"
	"github.com/dreamdwell/dreamdwell/cmd/dreamdwell/cmd/property"
	"github.com/dreamdwell/dreamdwell/cmd/dreamdwell/cmd/serve"
	"github.com/dreamdwell/dreamdwell/cmd/dreamdwell/cmd/version"
	"github.com/dreamdwell/dreamdwell/cmd/dreamdwell/cmd/whoami"
	"github.com/dreamdwell/dreamdwell/pkg/errors"
)

// Execute runs the dreamdwell CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "dreamdwell",
		Short:   "Real-estate listing catalog CLI",
		Version: a.build.Version,
		Long: `Dreamdwell browses and maintains a catalog of real-estate listings
stored behind the property API.

Listings can be searched by location, bedroom count and area. Adding,
editing and deleting listings requires a signed in identity, configured
as an identity provider id token (DREAMDWELL_ID_TOKEN).`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.dreamdwell.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml, wide, markdown")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("base-url", "", "property API root (default "+a.config.BaseURL+")")
	flags.Bool("offline", false, "use an empty in-memory store instead of the property API")

	rootCmd.SetVersionTemplate("dreamdwell {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand loads an explicit --config file, overlays the persistent
// flags and rebuilds the logger before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if flags.Changed("config") {
		path, err := flags.GetString("config")
		if err != nil {
			return errors.NewConfigError("flags", "config", err)
		}
		if path != "" && path != a.config.ConfigFile {
			config, err := LoadConfigFile(path)
			if err != nil {
				return err
			}
			a.config = config
		}
	}

	if err := a.config.ApplyFlags(flags); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(property.NewAddCommand(a))
	rootCmd.AddCommand(property.NewEditCommand(a))
	rootCmd.AddCommand(property.NewDeleteCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(whoami.NewCommand(a))
	rootCmd.AddCommand(completion.NewCommand())

	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

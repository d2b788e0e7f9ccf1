// Package list provides the command that prints the property catalog.
package list

import (
	"github.com/spf13/cobra"

	"github.com/dreamdwell/dreamdwell/internal/appcontext"
	"github.com/dreamdwell/dreamdwell/internal/cmd/output"
	"github.com/dreamdwell/dreamdwell/internal/cmd/table"
	"github.com/dreamdwell/dreamdwell/pkg/filter"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var criteria filter.Criteria

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Aliases: []string{"ls", "search"},
		Short:   "List properties, optionally filtered",
		Long: `List fetches the catalog from the property API and prints the
properties that match the search criteria. The # column is the catalog
index used by edit and delete.`,
		Example: `  dreamdwell list                       # Every property
  dreamdwell list --rooms 2             # Two bedroom properties
  dreamdwell list --location "oak ave"  # Address contains "oak ave"
  dreamdwell list --area 5 -o json      # Area code 5, as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, criteria)
		},
	}

	cmd.Flags().StringVar(&criteria.Location, "location", "", "Address contains this text (case-insensitive)")
	cmd.Flags().StringVar(&criteria.Rooms, "rooms", "", "Exact number of bedrooms")
	cmd.Flags().StringVar(&criteria.Area, "area", "", "Exact area code")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, criteria filter.Criteria) error {
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	client, err := app.Client()
	if err != nil {
		return err
	}
	if _, err := client.Sync(cmd.Context()); err != nil {
		return err
	}

	displayed := client.Search(criteria)
	app.Logger().Debug().
		Str("criteria", criteria.String()).
		Int("matches", len(displayed)).
		Msg("Listing properties")

	rows := table.Rows(client.Catalog(), displayed)
	return output.FormatProperties(cmd.OutOrStdout(), rows, format)
}

package property

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dreamdwell/dreamdwell/internal/appcontext"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <index>",
		GroupID: "core",
		Aliases: []string{"rm"},
		Short:   "Delete the property at a catalog index",
		Long: `Delete removes the property at the given catalog index from the
property API and then from the catalog. The request is made once and
is not retried. Requires a signed in identity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
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
			record, err := client.Property(index)
			if err != nil {
				return err
			}
			if err := client.Delete(cmd.Context(), index); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s)\n", record.Name, record.ID)
			return err
		},
	}
}

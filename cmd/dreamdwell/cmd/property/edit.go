package property

import (
	"github.com/spf13/cobra"

	"github.com/dreamdwell/dreamdwell/internal/appcontext"
	"github.com/dreamdwell/dreamdwell/internal/cmd/output"
)

// NewEditCommand creates the edit command.
func NewEditCommand(app appcontext.Interface) *cobra.Command {
	var f *form

	cmd := &cobra.Command{
		Use:     "edit <index>",
		GroupID: "core",
		Aliases: []string{"update"},
		Short:   "Edit the property at a catalog index",
		Long: `Edit loads the property at the given catalog index (see the # column
of list), applies the flags that were set and stores the result. Fields
that are not given keep their current values. Requires a signed in
identity.`,
		Example: `  dreamdwell edit 3 --price 1150
  dreamdwell edit 3 --drop-image 0 --image ./new-front.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
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
			if err := client.StartEdit(index); err != nil {
				return err
			}
			if err := f.apply(cmd.Context(), cmd, app, client); err != nil {
				return err
			}

			record, err := client.Submit(cmd.Context())
			if err != nil {
				return err
			}
			return output.FormatProperty(cmd.OutOrStdout(), record, format)
		},
	}

	f = addFormFlags(cmd, true)
	return cmd
}

package property

import (
	"github.com/spf13/cobra"

	"github.com/dreamdwell/dreamdwell/internal/appcontext"
	"github.com/dreamdwell/dreamdwell/internal/cmd/output"
)

// NewAddCommand creates the add command.
func NewAddCommand(app appcontext.Interface) *cobra.Command {
	var f *form

	cmd := &cobra.Command{
		Use:     "add",
		GroupID: "core",
		Aliases: []string{"create"},
		Short:   "Add a property to the catalog",
		Long: `Add stores a new property with the property API. Every field but the
description is required; price, baths and beds must be numbers. Local
image files are inlined as data: URLs. Requires a signed in identity.`,
		Example: `  dreamdwell add --name Loft --price 1200 --address "12 Oak St" \
    --baths 1 --beds 2 --area 85 --owner Ana --image ./front.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			client, err := app.Client()
			if err != nil {
				return err
			}
			if err := client.StartCreate(); err != nil {
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

	f = addFormFlags(cmd, false)
	return cmd
}

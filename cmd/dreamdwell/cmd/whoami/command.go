// Package whoami provides the command that shows the signed in identity.
package whoami

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dreamdwell/dreamdwell/internal/appcontext"
	"github.com/dreamdwell/dreamdwell/internal/cmd/output"
	"github.com/dreamdwell/dreamdwell/internal/cmd/table"
	"github.com/dreamdwell/dreamdwell/pkg/session"
)

// status is the structured form of the whoami output.
type status struct {
	SignedIn bool              `json:"signed_in" yaml:"signed_in"`
	Identity *session.Identity `json:"identity,omitempty" yaml:"identity,omitempty"`
	Theme    session.Theme     `json:"theme" yaml:"theme"`
}

// NewCommand creates the whoami command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		GroupID: "management",
		Short:   "Show the signed in identity and theme",
		Long: `Whoami prints the identity decoded from the configured id token
(DREAMDWELL_ID_TOKEN or id_token in the config file) together with the
session theme.`,
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

			s := client.Session()
			st := status{SignedIn: s.SignedIn(), Theme: s.Theme().Get()}
			if st.SignedIn {
				id := s.Identity().Get()
				st.Identity = &id
			}

			w := cmd.OutOrStdout()
			if !format.IsTable() {
				return output.NewFormatter(format).Format(w, st)
			}
			if !st.SignedIn {
				_, err := fmt.Fprintf(w, "Not signed in (theme: %s)\n", st.Theme)
				return err
			}
			return output.NewFormatter(format).Format(w, details(st))
		},
	}
}

func details(st status) table.Data {
	id := st.Identity
	rows := [][]string{
		{"Name", id.DisplayName()},
		{"Subject", id.Subject},
		{"Email", id.Email},
		{"Issuer", id.Issuer},
		{"Theme", string(st.Theme)},
	}
	if !id.ExpiresAt.IsZero() {
		rows = append(rows, []string{"Expires", id.ExpiresAt.Time.Format("2006-01-02 15:04 MST")})
	}
	return table.Data{
		Headers: []string{"Field", "Value"},
		Rows:    rows,
	}
}

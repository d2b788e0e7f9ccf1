// Package completion provides the shell completion command.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

type generator func(root *cobra.Command, w io.Writer) error

var generators = map[string]generator{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

// NewCommand creates the completion command. It replaces Cobra's default
// so it can live in the management group.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "completion [bash|zsh|fish|powershell]",
		GroupID: "management",
		Short:   "Generate a shell completion script",
		Long: `Generate the autocompletion script for your shell.

Bash:
  source <(dreamdwell completion bash)

Zsh:
  dreamdwell completion zsh > "${fpath[1]}/_dreamdwell"

Fish:
  dreamdwell completion fish > ~/.config/fish/completions/dreamdwell.fish

PowerShell:
  dreamdwell completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command for generating shell completions.
// Flag values (--format, --axis, --preset, --theme) complete too.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for clockblocks.

Load completions for the current shell session:

  bash:        source <(clockblocks completion bash)
  zsh:         source <(clockblocks completion zsh)
  fish:        clockblocks completion fish | source
  powershell:  clockblocks completion powershell | Out-String | Invoke-Expression

To load them for every session, write the script to your shell's completion
directory, e.g.:

  clockblocks completion zsh > "${fpath[1]}/_clockblocks"
  clockblocks completion fish > ~/.config/fish/completions/clockblocks.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

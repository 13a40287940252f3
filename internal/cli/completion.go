package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newCompletionCmd creates the completion command for generating shell completions.
func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for cratescope's commands and flags.

Load it directly for the current session:

  source <(cratescope completion bash)
  cratescope completion fish | source
  cratescope completion powershell | Out-String | Invoke-Expression

Or install it permanently:

  cratescope completion bash > /etc/bash_completion.d/cratescope
  cratescope completion zsh > "${fpath[1]}/_cratescope"
  cratescope completion fish > ~/.config/fish/completions/cratescope.fish

Zsh needs compinit enabled (autoload -U compinit; compinit in ~/.zshrc).`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

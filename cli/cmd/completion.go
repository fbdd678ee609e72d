package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for the sqlrest CLI.

To load completions:

Bash:
  $ source <(sqlrest completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ sqlrest completion bash > /etc/bash_completion.d/sqlrest
  # macOS:
  $ sqlrest completion bash > $(brew --prefix)/etc/bash_completion.d/sqlrest

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ sqlrest completion zsh > "${fpath[1]}/_sqlrest"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ sqlrest completion fish | source

  # To load completions for each session, execute once:
  $ sqlrest completion fish > ~/.config/fish/completions/sqlrest.fish

PowerShell:
  PS> sqlrest completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> sqlrest completion powershell > sqlrest.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			_ = cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			_ = cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			_ = cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			_ = cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}

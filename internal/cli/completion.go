package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/surveycharts/pkg/pipeline"
	"github.com/matzehuels/surveycharts/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for surveycharts.

Bash:
  $ source <(surveycharts completion bash)

Zsh:
  $ surveycharts completion zsh > "${fpath[1]}/_surveycharts"

Fish:
  $ surveycharts completion fish > ~/.config/fish/completions/surveycharts.fish

PowerShell:
  PS> surveycharts completion powershell | Out-String | Invoke-Expression

The --chart and --format flags complete each comma-separated item.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
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
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// registerListCompletions wires completions for the comma-separated
// --chart and --format flags.
func registerListCompletions(cmd *cobra.Command) {
	formats := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		formats[i] = string(f)
	}
	_ = cmd.RegisterFlagCompletionFunc("chart", listCompletion(pipeline.Charts))
	_ = cmd.RegisterFlagCompletionFunc("format", listCompletion(formats))
}

// listCompletion completes the item after the last comma, skipping values
// already listed.
func listCompletion(values []string) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix, partial := "", toComplete
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix, partial = toComplete[:i+1], toComplete[i+1:]
		}
		used := splitList(prefix)

		var out []string
		for _, v := range values {
			if strings.HasPrefix(v, partial) && !slices.Contains(used, v) {
				out = append(out, prefix+v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rpgmap/pkg/pipeline"
	"github.com/matzehuels/rpgmap/pkg/render/nodelink"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for rpgmap.

  bash:       source <(rpgmap completion bash)
  zsh:        rpgmap completion zsh > "${fpath[1]}/_rpgmap"
  fish:       rpgmap completion fish | source
  powershell: rpgmap completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// registerRenderCompletions completes --engine and --format values.
func registerRenderCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("engine", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		engines := nodelink.Engines()
		out := make([]string, len(engines))
		for i, e := range engines {
			out[i] = string(e)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		// Complete the last element of a comma-separated list.
		prefix := ""
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix = toComplete[:i+1]
		}
		formats := []string{pipeline.FormatHTML, pipeline.FormatSVG, pipeline.FormatDOT, pipeline.FormatJSON}
		out := make([]string, len(formats))
		for i, f := range formats {
			out[i] = prefix + f
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/render"
)

// dataFileExts are the extensions arbor reads graphs, keys, mappings and
// transcripts from.
var dataFileExts = []string{"json", "toml"}

// completeDataFiles completes positional arguments to .json and .toml files.
func completeDataFiles(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return dataFileExts, cobra.ShellCompDirectiveFilterFileExt
}

// completeRenderFormats completes --format to the formats render accepts.
func completeRenderFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	formats := make([]string, 0, len(render.Formats))
	for _, f := range render.Formats {
		formats = append(formats, string(f))
	}
	return formats, cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions attaches file and flag completion to the commands that
// read data files. Commands without positional files are left alone.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		switch cmd.Name() {
		case "match", "check", "trees", "render", "keygen", "prove", "verify":
			cmd.ValidArgsFunction = completeDataFiles
		}
		for _, name := range []string{"secret", "against", "mapping"} {
			if cmd.Flags().Lookup(name) != nil {
				_ = cmd.RegisterFlagCompletionFunc(name, completeDataFiles)
			}
		}
		if cmd.Name() == "render" {
			_ = cmd.RegisterFlagCompletionFunc("format", completeRenderFormats)
		}
	}
}

// completionCommand prints a shell completion script to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate a completion script for %[1]s. Arguments that name forests, key
pairs, mappings or transcripts complete to .json and .toml files.

  bash:        source <(%[1]s completion bash)
  zsh:         %[1]s completion zsh > "${fpath[1]}/_%[1]s"
  fish:        %[1]s completion fish | source
  powershell:  %[1]s completion powershell | Out-String | Invoke-Expression
`, appName),
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			default:
				return root.GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

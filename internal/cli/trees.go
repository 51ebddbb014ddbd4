package cli

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// treesOpts holds the command-line flags for the trees command.
type treesOpts struct {
	interactive bool // pick one tree with a terminal UI
	json        bool // print the summary as JSON
}

// treesCommand creates the trees command.
func (c *CLI) treesCommand() *cobra.Command {
	var opts treesOpts

	cmd := &cobra.Command{
		Use:   "trees <file>",
		Short: "List the trees of a forest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx)
			defer runner.Close()

			f, err := runner.LoadGraph(ctx, args[0])
			if err != nil {
				return err
			}
			prog := newProgress(loggerFromContext(ctx))
			summary, err := runner.Summarize(ctx, f)
			if err != nil {
				return err
			}
			prog.done("Summarized", "vertices", summary.Vertices, "trees", len(summary.Trees))

			switch {
			case opts.json:
				return printJSON(summary)
			case opts.interactive:
				return pickTree(summary)
			}

			printInfo("%s trees, %s vertices, %s edges",
				StyleNumber.Render(fmt.Sprint(len(summary.Trees))),
				StyleNumber.Render(fmt.Sprint(summary.Vertices)),
				StyleNumber.Render(fmt.Sprint(summary.Edges)))
			if len(summary.Trees) > 0 {
				printLine(renderTrees(summary))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "choose a tree interactively")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the summary as JSON")

	return cmd
}

// pickTree runs the tree picker and prints the chosen tree.
func pickTree(summary *pipeline.Summary) error {
	if len(summary.Trees) == 0 {
		printWarning("Forest is empty")
		return nil
	}
	final, err := tea.NewProgram(NewTreeListModel(summary.Trees)).Run()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "run tree picker")
	}
	m, ok := final.(TreeListModel)
	if !ok || m.Selected == nil {
		printInfo("No tree selected")
		return nil
	}
	tr := m.Selected
	printKeyValue("tree", fmt.Sprint(tr.Index))
	printKeyValue("vertices", fmt.Sprint(tr.Vertices))
	printKeyValue("edges", fmt.Sprint(tr.Edges))
	printKeyValue("leaves", fmt.Sprint(tr.Leaves))
	printKeyValue("center", joinLabels(tr.Center))
	printKeyValue("depths", joinInts(tr.Depths))
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printLine(s string) {
	fmt.Fprintln(stdout, s)
}

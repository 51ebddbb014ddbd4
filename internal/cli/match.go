package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// matchOpts holds the command-line flags for the match command.
type matchOpts struct {
	output  string // mapping file to write
	refresh bool   // ignore cached results
	table   bool   // print the mapping as a table
}

// matchCommand creates the match command.
func (c *CLI) matchCommand() *cobra.Command {
	var opts matchOpts

	cmd := &cobra.Command{
		Use:   "match <source> <target>",
		Short: "Find an isomorphism between two forests",
		Long: `Match decides whether two forest files are isomorphic and prints the vertex
mapping from source to target. The command exits with status 1 when the
forests are not isomorphic.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMatch(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the mapping to this file (.json or .toml)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached result exists")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print the mapping as a table")

	return cmd
}

func (c *CLI) runMatch(cmd *cobra.Command, srcPath, dstPath string, opts matchOpts) error {
	ctx := cmd.Context()
	runner := c.newRunner(ctx)
	defer runner.Close()

	src, err := runner.LoadGraph(ctx, srcPath)
	if err != nil {
		return err
	}
	dst, err := runner.LoadGraph(ctx, dstPath)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, "Matching forests...")
	spinner.Start()
	res, err := runner.Match(ctx, src, dst, pipeline.MatchOptions{Refresh: opts.refresh})
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("Matched", "vertices", res.Stats.Vertices, "trees", res.Stats.Trees,
		"isomorphic", res.Isomorphic, "cached", res.CacheHit)

	if !res.Isomorphic {
		printError("Forests are not isomorphic")
		printStats(res.Stats, res.CacheHit)
		return errors.New(errors.ErrCodeNoIsomorphism, "%s and %s are not isomorphic", srcPath, dstPath)
	}

	printSuccess("Forests are isomorphic")
	printStats(res.Stats, res.CacheHit)
	if opts.table {
		printLine(renderMapping(res.Mapping))
	} else {
		printLine(res.Mapping.String())
	}

	if opts.output != "" {
		if err := arborio.ExportMapping(res.Mapping, opts.output); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write mapping")
		}
		printFile(opts.output)
		printNextStep("Check it", "arbor check "+srcPath+" "+dstPath+" "+opts.output)
	}
	return nil
}

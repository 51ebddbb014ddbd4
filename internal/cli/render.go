package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file; derived from the input name when empty
	format  string // dot, svg, pdf or png
	against string // second forest to match and draw alongside
	mapping string // mapping file used to annotate vertices
	title   string // graph title
	centers bool   // outline tree centers
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Draw a forest, or a mapping between two forests",
		Long: `Render draws a forest with Graphviz. With --against, both forests are matched
and drawn side by side with the mapping as dashed edges. With --mapping,
each vertex is labeled with its image.

PDF and PNG output need rsvg-convert on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = c.Config.Render.Format
			}
			if !cmd.Flags().Changed("centers") {
				opts.centers = c.Config.Render.MarkCenters
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg (default), pdf, png")
	cmd.Flags().StringVar(&opts.against, "against", "", "match against this forest and draw both")
	cmd.Flags().StringVar(&opts.mapping, "mapping", "", "label vertices with their images under this mapping")
	cmd.Flags().StringVar(&opts.title, "title", "", "graph title")
	cmd.Flags().BoolVar(&opts.centers, "centers", false, "outline the center of every tree")
	cmd.MarkFlagsMutuallyExclusive("against", "mapping")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --format")
	}
	ctx := cmd.Context()
	runner := c.newRunner(ctx)
	defer runner.Close()

	f, err := runner.LoadGraph(ctx, input)
	if err != nil {
		return err
	}
	ropts := pipeline.RenderOptions{Format: format, Title: opts.title, MarkCenters: opts.centers}

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	var data []byte
	switch {
	case opts.against != "":
		data, err = c.renderAgainst(cmd, runner, f, opts.against, ropts)
	case opts.mapping != "":
		var s *pipeline.Mapping
		if s, err = runner.LoadMapping(ctx, opts.mapping); err == nil {
			data, err = runner.Render(ctx, f, s, ropts)
		}
	default:
		data, err = runner.Render(ctx, f, nil, ropts)
	}
	spinner.Stop()
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = outputPath(input, string(format))
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
	}
	printSuccess("Rendered %s", filepath.Base(input))
	printFile(out)
	return nil
}

func (c *CLI) renderAgainst(cmd *cobra.Command, runner *pipeline.Runner, f *pipeline.Forest, path string, opts pipeline.RenderOptions) ([]byte, error) {
	ctx := cmd.Context()
	other, err := runner.LoadGraph(ctx, path)
	if err != nil {
		return nil, err
	}
	res, err := runner.Match(ctx, f, other, pipeline.MatchOptions{})
	if err != nil {
		return nil, err
	}
	if !res.Isomorphic {
		printWarning("Forests are not isomorphic; drawing without a mapping")
	}
	return runner.RenderPair(ctx, f, other, res.Mapping, opts)
}

// outputPath replaces the extension of input with ext.
func outputPath(input, ext string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + "." + ext
}

package cli

import (
	"github.com/spf13/cobra"
)

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <source> <target> <mapping>",
		Short: "Verify that a mapping carries one forest onto another",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx)
			defer runner.Close()

			src, err := runner.LoadGraph(ctx, args[0])
			if err != nil {
				return err
			}
			dst, err := runner.LoadGraph(ctx, args[1])
			if err != nil {
				return err
			}
			s, err := runner.LoadMapping(ctx, args[2])
			if err != nil {
				return err
			}
			if err := runner.Check(ctx, src, dst, s); err != nil {
				printError("Mapping is not an isomorphism")
				return err
			}
			printSuccess("Mapping is a valid isomorphism (%d pairs)", s.Len())
			return nil
		},
	}
}

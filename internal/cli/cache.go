package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the match result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx)
			defer runner.Close()

			clearer, ok := runner.Cache.(cache.Clearer)
			if !ok {
				printInfo("Cache backend cannot be cleared")
				return nil
			}
			if err := clearer.Clear(ctx); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "clear cache")
			}
			printSuccess("Cleared cache")
			if dir := c.cacheLocation(); dir != "" {
				printDetail("Location: %s", dir)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := c.cacheLocation()
			if loc == "" {
				return errors.New(errors.ErrCodeInternal, "cannot determine cache directory")
			}
			fmt.Fprintln(stdout, loc)
			return nil
		},
	}
}

// cacheLocation returns the Redis URL when configured, otherwise the
// cache directory.
func (c *CLI) cacheLocation() string {
	cc := c.Config.Cache
	if cc.RedisURL != "" {
		return cc.RedisURL
	}
	if cc.Dir != "" {
		return cc.Dir
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return ""
	}
	return dir
}

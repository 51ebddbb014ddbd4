// Package cli implements the arbor command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/buildinfo"
	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/config"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "arbor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	// Global flags.
	configPath  string
	verbose     bool
	noCache     bool
	metricsFile string

	metrics *observability.PrometheusHooks
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Arbor matches forests and proves it",
		Long: `Arbor decides whether two forests are isomorphic, produces the vertex
mapping, checks mappings, and runs offline graph-isomorphism proof rounds.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/arbor/config.toml)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the result cache")
	flags.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")

	root.AddCommand(c.matchCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.treesCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.keygenCommand())
	root.AddCommand(c.proveCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// setup loads the configuration, applies the log level and registers
// metrics hooks. Flags take precedence over the config file.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	c.SetLogLevel(levelFor(cfg.Log.Level, c.verbose))

	if c.metricsFile == "" {
		c.metricsFile = cfg.Metrics.File
	}
	if c.metricsFile != "" && c.metrics == nil {
		c.metrics = observability.NewPrometheusHooks()
		observability.SetMatchHooks(c.metrics)
		observability.SetCacheHooks(c.metrics)
		observability.SetProofHooks(c.metrics)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// Close flushes metrics. It runs after the command, whether or not the
// command succeeded.
func (c *CLI) Close() error {
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteTextfile(c.metricsFile); err != nil {
		return err
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsFile)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A cache that cannot be
// opened is logged and replaced by a NullCache.
func (c *CLI) newRunner(ctx context.Context) *pipeline.Runner {
	cc := c.Config.Cache
	store, err := cache.Open(ctx, cache.Options{
		Disabled: c.noCache || cc.Disabled,
		RedisURL: cc.RedisURL,
		Prefix:   cc.Prefix,
		Dir:      cc.Dir,
	})
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "error", err)
		store = cache.NewNullCache()
	}
	var keyer cache.Keyer
	if cc.Scope != "" {
		keyer = cache.NewScopedKeyer(nil, cc.Scope+":")
	}
	return pipeline.NewRunner(store, keyer, c.Logger)
}

// Package cli implements the arbor command-line interface.
//
// This package wires the pipeline into cobra commands. Every command reads
// local files only; results are cached in the user cache dir or in Redis
// when configured.
//
// # Commands
//
// The main commands are:
//   - match: Find an isomorphism between two forests
//   - check: Verify a mapping file against two forests
//   - trees: List the components of a forest
//   - render: Draw a forest or a mapping with Graphviz
//   - keygen, prove, verify: Offline proof rounds
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/arbor/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Lines carry a short wall-clock stamp so
// consecutive stages of one run can be told apart.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// levelFor picks the log level from the config file value. --verbose wins
// over the file; an unknown name falls back to info.
func levelFor(configured string, verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	if configured == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(configured)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// progress times one command stage and reports it as a structured line:
//
//	INFO Matched vertices=42 trees=3 cached=false duration=12ms
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time as "duration".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger set by setup, or log.Default() for
// commands run without it.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/arbor/internal/cli"
	"github.com/matzehuels/arbor/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	if stderrors.Is(err, context.Canceled) {
		os.Exit(130) // Standard shell convention for SIGINT
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.UserMessage(err))
		if cause := stderrors.Unwrap(err); cause != nil {
			fmt.Fprintln(os.Stderr, "  "+cause.Error())
		}
	}
	os.Exit(errors.ExitCode(err))
}

func run(ctx context.Context) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	if cerr := c.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

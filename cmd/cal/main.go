// Command cal is a command-line day planner backed by SQLite.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/calendar/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()

	code := cli.GetExitCode(err)
	// Rejections and test failures are already reported on stdout.
	if err != nil && code != cli.ExitFailure {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}

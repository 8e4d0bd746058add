// Package main is the entry point for the cardmanage CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cardmanager/cardmanage/internal/trace"
)

// exitError is the status for usage, precondition and library failures.
// Status 1 is reserved for "cards are not equivalent".
const exitError = 2

func main() {
	stopTrace := trace.Init(os.Stderr)
	code := run(context.Background(), os.Args, os.Stdout, os.Stderr)
	stopTrace()
	os.Exit(code)
}

// run executes the command line and returns the process exit status
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr).Run(ctx, args)
	if err == nil {
		return 0
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		if msg := exitCoder.Error(); msg != "" {
			_, _ = fmt.Fprintln(stderr, msg)
		}
		return exitCoder.ExitCode()
	}

	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}

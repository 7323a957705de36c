package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/ridequeue/internal/cli"
)

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command tree and maps its outcome to an exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := cli.BuildCLI()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		// The logger may not be initialized when config loading fails.
		_, _ = io.WriteString(stderr, "ridequeue: "+err.Error()+"\n")
		return exitError
	}
	return exitOK
}

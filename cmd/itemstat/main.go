package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sadopc/itemstat/internal/config"
	"github.com/sadopc/itemstat/internal/logger"
	"github.com/sadopc/itemstat/internal/model"
)

var version = "dev"

// Exit statuses.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInvalidPath = 2
	exitIO          = 3
	exitNotFound    = 4
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	defer logger.Shutdown()

	if err == nil {
		return exitOK
	}

	logger.Get().Debug("command failed", "err", err)
	if a.legacyExit {
		fmt.Fprintln(stdout, "Error")
		fmt.Fprintf(stderr, "%v\n", err)
		return exitOK
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, model.ErrInvalidPath), errors.Is(err, config.ErrInvalid):
		return exitInvalidPath
	case errors.Is(err, model.ErrIO):
		return exitIO
	case errors.Is(err, model.ErrNotFound):
		return exitNotFound
	}
	return exitFailure
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/aplab/internal/cli"
)

// main is the entrypoint for the aplab application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	os.Exit(run(os.Stdout, os.Args[1:]))
}

// run encapsulates the main application logic for easier testing and error
// handling. It returns the process exit code.
func run(outW io.Writer, args []string) (code int) {
	// Startup panics are reported as a clean message instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(outW, "application startup panicked: %v\n", r)
			code = 1
		}
	}()

	return cli.Execute(cli.NewRootCommand(outW), args)
}

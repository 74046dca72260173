// Package main provides the entry point for the tdfcheck CLI.
//
// tdfcheck validates a batch of AVR target description files (TDFs) with an
// external validator and reports which files passed and which failed.
//
// Usage:
//
//	tdfcheck validate ./atdf --exec "xmllint --noout --schema atdf.xsd"
//	tdfcheck validate --manifest build/tdf-results.yaml
//
// See --help for all available options.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitError  = 2
)

// errValidationFailed is returned by validate when at least one TDF failed.
// The report has already been written, so it is not printed again.
var errValidationFailed = errors.New("validation failed")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return exitCode(newRootCmd().ExecuteContext(ctx), os.Stderr)
}

// exitCode maps a command error to a process exit status.
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errValidationFailed):
		return exitFailed
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}

package tdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/avr-tooling/tdfcheck/pkg/log"
	"github.com/avr-tooling/tdfcheck/pkg/types"
)

// waitDelay bounds how long output is drained after the program exits or is killed.
const waitDelay = 2 * time.Second

// CommandValidator validates a file by running an external program as
// `<program> <args...> <path>`.
//
// Exit status 0 passes. Any other status fails, with each non-blank output
// line (stdout and stderr combined) reported as one failure. A program that
// cannot be started or runs past Timeout yields a single failure describing
// the fault.
type CommandValidator struct {
	Program string
	Args    []string
	Timeout time.Duration // 0 means no limit

	logger *slog.Logger
}

// NewCommandValidator builds a validator from an argv slice.
func NewCommandValidator(argv []string, timeout time.Duration) (*CommandValidator, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, ErrNoCommand
	}
	if timeout < 0 {
		return nil, fmt.Errorf("invalid validator timeout %s: must be non-negative", timeout)
	}
	return &CommandValidator{
		Program: argv[0],
		Args:    append([]string(nil), argv[1:]...),
		Timeout: timeout,
		logger:  log.Discard(),
	}, nil
}

// WithLogger sets the logger for per-run diagnostics.
func (c *CommandValidator) WithLogger(logger *slog.Logger) *CommandValidator {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Validate runs the program against path.
func (c *CommandValidator) Validate(ctx context.Context, path string) []types.Failure {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	args := append(append([]string(nil), c.Args...), path)
	cmd := exec.CommandContext(ctx, c.Program, args...)
	// Children that inherit the output pipe must not hold Validate open
	// after the program itself has been killed.
	cmd.WaitDelay = waitDelay

	start := time.Now()
	out, err := cmd.CombinedOutput()
	c.logger.Debug("validator finished",
		"program", c.Program,
		"path", path,
		"duration", time.Since(start),
		"error", err,
	)

	if err == nil {
		return nil
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return []types.Failure{types.Failuref("validator timed out after %s", c.Timeout)}
	case errors.Is(ctx.Err(), context.Canceled):
		return []types.Failure{"validation canceled"}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		failures := outputLines(out)
		if len(failures) == 0 {
			failures = []types.Failure{types.Failuref("validator exited with status %d", exitErr.ExitCode())}
		}
		return failures
	}

	return []types.Failure{types.Failuref("validator could not run: %v", err)}
}

// outputLines splits validator output into failures, dropping blank lines
// and terminal escape sequences.
func outputLines(out []byte) []types.Failure {
	var failures []types.Failure
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(log.StripANSI(line))
		if line == "" {
			continue
		}
		failures = append(failures, types.Failure(line))
	}
	return failures
}

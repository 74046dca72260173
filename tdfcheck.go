// Package tdfcheck validates batches of AVR target description files (TDFs)
// and reports the outcome.
//
// # Basic Usage
//
// Any value with an ID and a Validate method can be checked:
//
//	items := []tdfcheck.Item{
//	    tdfcheck.StaticItem{Path: "ATtiny85.atdf"},
//	    tdfcheck.StaticItem{Path: "ATmega328P.atdf", Failures: []tdfcheck.Failure{"Missing register X"}},
//	}
//
//	report, err := tdfcheck.Check(items)
//	if err != nil {
//	    log.Fatal(err) // output could not be written
//	}
//	if !report.Passed() {
//	    os.Exit(1)
//	}
//
// # Files on Disk
//
// Use the tdf package to discover files and bind them to an external validator:
//
//	v, _ := tdf.NewCommandValidator([]string{"xmllint", "--noout"}, 30*time.Second)
//	items, err := tdf.NewLoader("atdf", tdf.Config{}, v).Load(ctx)
//	report, err := tdfcheck.Check(items, tdfcheck.WithFormat(report.FormatMarkdown))
package tdfcheck

import (
	"io"
	"os"

	"github.com/avr-tooling/tdfcheck/pkg/report"
	"github.com/avr-tooling/tdfcheck/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/avr-tooling/tdfcheck" without subpackages.
type (
	// Item is anything that has an ID and can validate itself.
	Item = types.Item

	// Failure is one validation error message.
	Failure = types.Failure

	// ItemResult is the outcome for one item.
	ItemResult = types.ItemResult

	// BatchReport is the outcome for a whole batch.
	BatchReport = types.BatchReport

	// StaticItem is an item with precomputed failures.
	StaticItem = types.StaticItem

	// ItemFunc is an item whose check is a function.
	ItemFunc = types.ItemFunc
)

// checkConfig holds Check configuration.
type checkConfig struct {
	out    io.Writer
	format report.Format
	color  bool
	quiet  bool
}

// Option configures Check.
type Option func(*checkConfig)

// WithOutput sets where the report is written. Default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *checkConfig) {
		c.out = w
	}
}

// WithFormat selects text, json or markdown output. Default is text.
func WithFormat(f report.Format) Option {
	return func(c *checkConfig) {
		c.format = f
	}
}

// WithColor enables ANSI colors in text output.
func WithColor(enabled bool) Option {
	return func(c *checkConfig) {
		c.color = enabled
	}
}

// WithQuiet omits pass lines from text output.
func WithQuiet(quiet bool) Option {
	return func(c *checkConfig) {
		c.quiet = quiet
	}
}

// Check validates every item once, in order, and writes a report.
//
// The report is always complete. A non-nil error means only that output
// could not be written; failed items are reported through BatchReport.
func Check(items []Item, opts ...Option) (*BatchReport, error) {
	config := &checkConfig{
		out:    os.Stdout,
		format: report.FormatText,
	}
	for _, opt := range opts {
		opt(config)
	}

	return report.New(config.out,
		report.WithFormat(config.format),
		report.WithColor(config.color),
		report.WithQuiet(config.quiet),
	).Run(items)
}

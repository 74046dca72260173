// Package report runs a batch of validatable items and renders the outcome.
//
// Every item is validated exactly once and in input order; a failing item
// never stops the batch. Failures are data, so Run has no error path for
// them. The only error it returns comes from writing to the output sink.
package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/avr-tooling/tdfcheck/pkg/log"
	"github.com/avr-tooling/tdfcheck/pkg/types"
)

// Format is an output format for the report.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatSARIF    Format = "sarif"
)

// Formats lists the supported formats, in flag help order.
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatSARIF}

// ParseFormat validates a --format value. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatMarkdown, FormatSARIF:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// renderer turns item results into output as they are produced.
type renderer interface {
	item(r types.ItemResult) error
	summary(b *types.BatchReport) error
}

// Reporter validates items and writes a report to its output.
type Reporter struct {
	out    io.Writer
	format Format
	color  bool
	quiet  bool
	logger *slog.Logger

	toolVersion string
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithFormat selects the output format.
func WithFormat(f Format) Option {
	return func(r *Reporter) {
		r.format = f
	}
}

// WithColor enables ANSI colors in text output.
func WithColor(enabled bool) Option {
	return func(r *Reporter) {
		r.color = enabled
	}
}

// WithQuiet suppresses pass lines in text output. Failures and the summary are still written.
func WithQuiet(quiet bool) Option {
	return func(r *Reporter) {
		r.quiet = quiet
	}
}

// WithLogger sets the logger for per-item debug records.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reporter) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithToolVersion sets the tool version recorded in SARIF output.
func WithToolVersion(v string) Option {
	return func(r *Reporter) {
		r.toolVersion = v
	}
}

// New creates a Reporter writing to out. Defaults: text format, no color.
func New(out io.Writer, opts ...Option) *Reporter {
	r := &Reporter{
		out:         out,
		format:      FormatText,
		logger:      log.Discard(),
		toolVersion: "dev",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates each item once, in order, and writes the report.
// The returned report is always complete; a non-nil error means only that
// some output could not be written.
func (r *Reporter) Run(items []types.Item) (*types.BatchReport, error) {
	rend := r.newRenderer()
	batch := types.NewBatchReport(len(items))

	var writeErr error
	keep := func(err error) {
		if err != nil && writeErr == nil {
			writeErr = fmt.Errorf("writing report: %w", err)
		}
	}

	for _, item := range items {
		res := types.ItemResult{
			ID:       item.ID(),
			Failures: item.Validate(),
		}
		batch.Add(res)

		r.logger.Debug("validated item",
			"id", res.ID,
			"failures", len(res.Failures),
		)

		keep(rend.item(res))
	}

	keep(rend.summary(batch))

	r.logger.Debug("batch complete",
		"total", batch.Total,
		"failed", batch.Failed,
	)

	return batch, writeErr
}

func (r *Reporter) newRenderer() renderer {
	switch r.format {
	case FormatJSON:
		return &jsonRenderer{out: r.out}
	case FormatMarkdown:
		return &markdownRenderer{out: r.out}
	case FormatSARIF:
		return &sarifRenderer{out: r.out, toolVersion: r.toolVersion}
	default:
		return &textRenderer{
			out:    r.out,
			styles: newStyles(r.color),
			quiet:  r.quiet,
		}
	}
}

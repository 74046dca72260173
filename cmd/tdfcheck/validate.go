package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avr-tooling/tdfcheck/pkg/config"
	"github.com/avr-tooling/tdfcheck/pkg/log"
	"github.com/avr-tooling/tdfcheck/pkg/report"
	"github.com/avr-tooling/tdfcheck/pkg/tdf"
	"github.com/avr-tooling/tdfcheck/pkg/types"
	"github.com/spf13/cobra"
)

// discoveryOptions selects which files below the root are considered.
type discoveryOptions struct {
	extensions    []string
	include       string
	exclude       string
	ignoreFile    string
	includeHidden bool
}

type validateOptions struct {
	discoveryOptions

	exec     string
	timeout  time.Duration
	manifest string
	format   string
	color    string
}

func newValidateCmd(g *globalOptions) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [root]",
		Short: "Validate target description files",
		Long: `Validate every target description file below root (default: current directory).

Each file is passed to the validator program given with --exec, as its last
argument. Exit status 0 passes the file; otherwise each line the program
prints is reported as one error. Alternatively, --manifest reads the results
of an earlier validator run instead of running one.

Examples:
  # Validate against the ATDF schema
  tdfcheck validate ./atdf --exec "xmllint --noout --schema atdf.xsd"

  # Report results recorded by a build step
  tdfcheck validate --manifest build/tdf-results.yaml --format markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, g, opts)
		},
	}

	addValidateFlags(cmd, opts)
	return cmd
}

func addDiscoveryFlags(cmd *cobra.Command, opts *discoveryOptions) {
	cmd.Flags().StringSliceVar(&opts.extensions, "ext", tdf.DefaultExtensions, "File extensions treated as TDFs")
	cmd.Flags().StringVar(&opts.include, "include", "", "Include paths matching regex pattern (comma-separated)")
	cmd.Flags().StringVar(&opts.exclude, "exclude", "", "Exclude paths matching regex pattern (comma-separated)")
	cmd.Flags().StringVar(&opts.ignoreFile, "ignore-file", tdf.DefaultIgnoreFile, "gitignore-style file, relative to root, listing paths to skip")
	cmd.Flags().BoolVar(&opts.includeHidden, "include-hidden", false, "Include hidden files and directories")
}

func addValidateFlags(cmd *cobra.Command, opts *validateOptions) {
	addDiscoveryFlags(cmd, &opts.discoveryOptions)
	cmd.Flags().StringVar(&opts.exec, "exec", "", "Validator program and arguments, run once per file with the path appended")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", config.DefaultValidatorTimeout, "Maximum run time of the validator per file (0 for no limit)")
	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "Results manifest (YAML or JSON) to report instead of running a validator")
	cmd.Flags().StringVar(&opts.format, "format", string(report.FormatText), "Output format: text, json, markdown, sarif")
	cmd.Flags().StringVar(&opts.color, "color", string(report.ColorAuto), "Colorize output: auto, always, never")
}

func runValidate(cmd *cobra.Command, args []string, g *globalOptions, opts *validateOptions) error {
	cfg, err := loadSettings(args, g)
	if err != nil {
		return err
	}
	applyValidateFlags(cmd, cfg, opts)

	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	mode, err := report.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}

	logger := log.New(cmd.ErrOrStderr(), g.verbose, g.quiet)
	out := cmd.OutOrStdout()
	progress := format == report.FormatText && !g.quiet

	if progress {
		fmt.Fprintln(out, "Loading target description files.")
	}

	items, err := loadItems(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("loading target description files: %w", err)
	}

	reporter := report.New(out,
		report.WithFormat(format),
		report.WithColor(report.ResolveColor(mode, out)),
		report.WithQuiet(g.quiet),
		report.WithLogger(logger),
		report.WithToolVersion(version),
	)
	batch, err := reporter.Run(items)
	if err != nil {
		return err
	}

	if progress {
		fmt.Fprintln(out, "Done")
	}

	logger.Info("validation complete", "total", batch.Total, "failed", batch.Failed)
	if !batch.Passed() {
		return errValidationFailed
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// loadSettings reads the configuration file, if any, sets the root from
// args and fills defaults. Flags are applied on top by the caller.
func loadSettings(args []string, g *globalOptions) (*config.File, error) {
	cfg := &config.File{}
	if path := config.FindConfigFile(g.configPath); path != "" {
		loaded, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if len(args) == 1 {
		cfg.Root = args[0]
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

func applyDiscoveryFlags(cmd *cobra.Command, cfg *config.File, opts *discoveryOptions) {
	flags := cmd.Flags()
	if flags.Changed("ext") {
		cfg.Extensions = opts.extensions
	}
	if flags.Changed("include") {
		cfg.Include = tdf.ParsePatterns(opts.include)
	}
	if flags.Changed("exclude") {
		cfg.Exclude = tdf.ParsePatterns(opts.exclude)
	}
	if flags.Changed("ignore-file") {
		cfg.IgnoreFile = opts.ignoreFile
	}
	if flags.Changed("include-hidden") {
		cfg.IncludeHidden = opts.includeHidden
	}
}

// applyValidateFlags overrides configuration values with the flags that were
// set. A source flag replaces the other source from the configuration file.
func applyValidateFlags(cmd *cobra.Command, cfg *config.File, opts *validateOptions) {
	applyDiscoveryFlags(cmd, cfg, &opts.discoveryOptions)

	flags := cmd.Flags()
	execSet := flags.Changed("exec")
	manifestSet := flags.Changed("manifest")

	if execSet {
		cfg.Validator.Command = strings.Fields(opts.exec)
		if !manifestSet {
			cfg.Manifest = ""
		}
	}
	if manifestSet {
		cfg.Manifest = opts.manifest
		if !execSet {
			cfg.Validator.Command = nil
		}
	}
	if flags.Changed("timeout") {
		cfg.Validator.Timeout = opts.timeout
	}
	if flags.Changed("format") {
		cfg.Format = opts.format
	}
	if flags.Changed("color") {
		cfg.Color = opts.color
	}
}

func loaderConfig(cfg *config.File) tdf.Config {
	return tdf.Config{
		Extensions: cfg.Extensions,
		Filter: tdf.FilterConfig{
			Include: cfg.Include,
			Exclude: cfg.Exclude,
		},
		IgnoreFile:    cfg.IgnoreFile,
		IncludeHidden: cfg.IncludeHidden,
	}
}

// loadItems returns the items to validate: manifest entries when a manifest
// is configured, otherwise the files below the root bound to the validator command.
func loadItems(ctx context.Context, cfg *config.File, logger *slog.Logger) ([]types.Item, error) {
	if cfg.Manifest != "" {
		logger.Debug("reading results manifest", "path", cfg.Manifest)
		items, err := tdf.LoadManifest(cfg.Manifest)
		if err != nil {
			return nil, err
		}
		return tdf.FilterItems(items, loaderConfig(cfg).Filter)
	}

	v, err := tdf.NewCommandValidator(cfg.Validator.Command, cfg.Validator.Timeout)
	if err != nil {
		return nil, err
	}
	v.WithLogger(logger)

	return tdf.NewLoader(cfg.Root, loaderConfig(cfg), v).WithLogger(logger).Load(ctx)
}

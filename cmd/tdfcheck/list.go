package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/avr-tooling/tdfcheck/pkg/log"
	"github.com/avr-tooling/tdfcheck/pkg/tdf"
	"github.com/spf13/cobra"
)

type listOptions struct {
	discoveryOptions

	format string
}

func newListCmd(g *globalOptions) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list [root]",
		Short: "List target description files",
		Long:  "Display the target description files that validate would check, without validating them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, g, opts)
		},
	}

	addDiscoveryFlags(cmd, &opts.discoveryOptions)
	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format: table, json")

	return cmd
}

func runList(cmd *cobra.Command, args []string, g *globalOptions, opts *listOptions) error {
	if opts.format != "table" && opts.format != "json" {
		return fmt.Errorf("unknown output format: %s", opts.format)
	}

	cfg, err := loadSettings(args, g)
	if err != nil {
		return err
	}
	applyDiscoveryFlags(cmd, cfg, &opts.discoveryOptions)

	logger := log.New(cmd.ErrOrStderr(), g.verbose, g.quiet)
	paths, err := tdf.NewLoader(cfg.Root, loaderConfig(cfg), nil).WithLogger(logger).Discover(cmd.Context())
	if err != nil {
		return fmt.Errorf("discovering target description files: %w", err)
	}

	switch opts.format {
	case "json":
		return outputListJSON(cmd, cfg.Root, paths)
	default:
		return outputListTable(cmd, paths)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

type listing struct {
	Root  string   `json:"root"`
	Count int      `json:"count"`
	Files []string `json:"files"`
}

func outputListJSON(cmd *cobra.Command, root string, paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(listing{Root: root, Count: len(paths), Files: paths})
}

func outputListTable(cmd *cobra.Command, paths []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "#\tPath\n")
	fmt.Fprintf(w, "-\t----\n")
	for i, p := range paths {
		fmt.Fprintf(w, "%d\t%s\n", i+1, p)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d file(s)\n", len(paths))
	return nil
}

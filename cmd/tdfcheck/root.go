package main

import (
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by all subcommands.
type globalOptions struct {
	configPath string
	verbose    bool
	quiet      bool
}

// newRootCmd creates the root command. Without a subcommand it behaves like
// `tdfcheck validate`.
func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "tdfcheck [root]",
		Short: "Validate AVR target description files",
		Long: `tdfcheck validates a batch of AVR target description files (TDFs).

Each file is checked by an external validator program, or its result is read
from a results manifest written by one. Every file is reported as passed or
failed, followed by a summary. The exit status is 0 when all files passed,
1 when any failed and 2 on usage or configuration errors.

Running tdfcheck without a subcommand is the same as running tdfcheck validate.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, g, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Path to configuration file (default: ./.tdfcheck.yaml, then $XDG_CONFIG_HOME/tdfcheck/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "Quiet mode (failures and summary only)")

	addValidateFlags(cmd, opts)

	// Add subcommands
	cmd.AddCommand(newValidateCmd(g))
	cmd.AddCommand(newListCmd(g))
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

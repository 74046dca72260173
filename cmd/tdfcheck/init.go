package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avr-tooling/tdfcheck/pkg/config"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a tdfcheck configuration file",
		Long: `Init writes a commented .tdfcheck.yaml to the current directory.

Examples:
  # Create .tdfcheck.yaml in the current directory
  tdfcheck init

  # Create the user-wide configuration
  tdfcheck init -o ~/.config/tdfcheck/config.yaml

  # Overwrite an existing file
  tdfcheck init -f`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile, "Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing configuration file")

	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, config.Template(), 0o600); err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nSet validator.command or manifest before running tdfcheck validate.")
	return nil
}

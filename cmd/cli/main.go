package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/biosecure/cmd/cli/assess"
	"github.com/myrjola/biosecure/cmd/cli/catalog"
	"github.com/myrjola/biosecure/internal/errors"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{ //nolint:exhaustruct // cobra defaults
		Use:          "biosecure-cli",
		Short:        "Farm biosecurity risk assessment from the terminal",
		Long:         `Command line utilities for the biosecure farm dashboard.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.AddGroup(catalog.Group, assess.Group)
	rootCmd.AddCommand(catalog.NewCommand(), assess.NewScoreCommand(), assess.NewAssessCommand())
	return rootCmd
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

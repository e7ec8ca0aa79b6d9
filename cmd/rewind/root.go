package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/rewind/internal/cli"
	"github.com/aretw0/rewind/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rewind",
	Short: "Rewind records edits to observable objects and replays them",
	Long: `Rewind is an undo/redo engine. Edits made within one unit of work form a
cycle that is undone or redone as a whole.

This command hosts a demo document to explore the engine interactively,
from a script, or over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (.yaml, .json or .toml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
}

// setup loads the configuration and builds the logger shared by every command.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	logger, err := cli.NewLogger(cfg, debug)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/cli"
	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/spf13/cobra"
)

var scriptCmd = &cobra.Command{
	Use:   "script FILE",
	Short: "Replay a YAML script against a demo document",
	Long: `Runs each step of the script as one unit of work and checks its
expectations. Exits non-zero on the first failed step.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()

		script, err := cli.ParseScript(f)
		if err != nil {
			return err
		}

		name := cfg.Name
		if script.Name != "" {
			name = script.Name
		}
		doc := session.NewDocument(name, cycle.NewLoop(0),
			rewind.WithTracking(cfg.Tracking),
			rewind.WithMaxLength(cfg.MaxLength),
			rewind.WithLogger(logger),
		)
		return cli.RunScript(script, doc, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(scriptCmd)
}

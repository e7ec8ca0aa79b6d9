package main

import (
	"os"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/cli"
	"github.com/aretw0/rewind/internal/presentation/tui"
	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Edit a demo document interactively",
	Long: `Starts a prompt over a demo document. Each input line is one unit of work,
so commands separated by ';' are undone and redone together.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		plain, _ := cmd.Flags().GetBool("plain")

		doc := session.NewDocument(cfg.Name, cycle.NewLoop(0),
			rewind.WithTracking(cfg.Tracking),
			rewind.WithMaxLength(cfg.MaxLength),
			rewind.WithLogger(logger),
		)

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		render := tui.Plain
		if interactive && !plain {
			render = tui.NewRenderer()
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		return cli.RunREPL(ctx, doc, cli.REPLOptions{
			In:     os.Stdin,
			Out:    cmd.OutOrStdout(),
			Prompt: interactive,
			Render: render,
			Logger: logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().Bool("plain", false, "Print markdown without terminal styling")
}

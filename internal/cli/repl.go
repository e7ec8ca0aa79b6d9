package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/internal/presentation/tui"
	"github.com/aretw0/rewind/pkg/session"
)

// REPLOptions configures RunREPL.
type REPLOptions struct {
	In     io.Reader
	Out    io.Writer
	Prompt bool // print "> " and the banner; set when In is a terminal
	Render tui.Renderer
	Logger *slog.Logger
}

const replHelp = `### Commands

Separate commands with ` + "`;`" + ` to record them as a single undo cycle.

| command | effect |
|---|---|
| set k=v ... | set attributes (v=null unsets) |
| unset k ... | remove attributes |
| add x [at N] | insert an item |
| remove x | remove an item |
| reset a,b,c | replace all items |
| undo / redo | step one cycle |
| undo! / redo! | step every cycle |
| track on/off | start or stop recording |
| max N | bound the history (0 = unbounded) |
| clear | drop the history |
| show | print the document |
| history | print the history |
| help | this table |
| quit | leave |
`

// RunREPL reads command lines until quit, EOF or ctx cancellation.
// Each line is applied as one unit of work on doc.
func RunREPL(ctx context.Context, doc *session.Document, opts REPLOptions) error {
	if opts.Render == nil {
		opts.Render = tui.Plain
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	out := opts.Out

	if opts.Prompt {
		tui.PrintBanner(out)
		printSystemMessage(out, "Editing document '%s'. Type 'help' for commands.", doc.ID)
	}

	scanner := bufio.NewScanner(NewInterruptibleReader(ctx, opts.In))
	for {
		if opts.Prompt {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			err := scanner.Err()
			if err == nil || isInterrupted(err) {
				return nil
			}
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			return nil
		case "help":
			render(out, opts.Render, replHelp)
			continue
		case "show":
			render(out, opts.Render, tui.DocumentMarkdown(doc.Snapshot()))
			continue
		case "history":
			render(out, opts.Render, tui.HistoryMarkdown(doc.Inspect()))
			continue
		}

		res, err := doc.Exec(line)
		if err != nil {
			opts.Logger.Debug("command failed", "line", line, "error", err)
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, status(doc, res))
	}
}

func status(doc *session.Document, res session.Result) string {
	h := doc.History
	s := fmt.Sprintf("ok: %d applied", res.Applied)
	if res.Undone > 0 {
		s += fmt.Sprintf(", %d undone", res.Undone)
	}
	if res.Redone > 0 {
		s += fmt.Sprintf(", %d redone", res.Redone)
	}
	return s + fmt.Sprintf(" [pointer %d/%d]", h.Pointer(), h.Len())
}

func render(w io.Writer, r tui.Renderer, markdown string) {
	out, err := r(markdown)
	if err != nil {
		out = markdown
	}
	fmt.Fprint(w, out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(w)
	}
}

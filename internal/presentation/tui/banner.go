package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the rewind banner to w, coloured when w's terminal
// supports it.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"                        _           _ ", "#38bdf8"},
		{"  _ __ _____      _____(_)_ __   __| |", "#22d3ee"},
		{" | '__/ _ \\ \\ /\\ / / _ \\ | '_ \\ / _` |", "#2dd4bf"},
		{" | | |  __/\\ V  V /  __/ | | | | (_| |", "#34d399"},
		{" |_|  \\___| \\_/\\_/ \\___|_|_| |_|\\__,_|", "#4ade80"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

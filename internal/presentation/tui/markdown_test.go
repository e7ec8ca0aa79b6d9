package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/rewind/internal/presentation/tui"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryMarkdown(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		md := tui.HistoryMarkdown(session.History{Name: "doc", Pointer: -1, Tracking: true})
		assert.Contains(t, md, "History `doc`")
		assert.Contains(t, md, "unbounded")
		assert.Contains(t, md, "_empty_")
	})

	t.Run("Pointer Marker", func(t *testing.T) {
		md := tui.HistoryMarkdown(session.History{
			Name:      "doc",
			Pointer:   0,
			Length:    2,
			MaxLength: 10,
			Actions: []session.ActionView{
				{Kind: "add", Cycle: 1, Applied: true},
				{Kind: "change", Cycle: 2},
			},
		})
		assert.Contains(t, md, "max 10")
		assert.Contains(t, md, "tracking off")
		assert.Contains(t, md, "| → | 0 | 1 | add | applied |")
		assert.Contains(t, md, "|  | 1 | 2 | change | undone |")
	})
}

func TestDocumentMarkdown(t *testing.T) {
	md := tui.DocumentMarkdown(session.Snapshot{
		ID:         "doc",
		Attributes: map[string]any{"b": 2, "a": "x"},
		Items:      []any{"first", "second"},
	})
	assert.Contains(t, md, "| a | x |\n| b | 2 |")
	assert.Contains(t, md, "1. first\n2. second")

	empty := tui.DocumentMarkdown(session.Snapshot{ID: "doc"})
	assert.Contains(t, empty, "_no attributes_")
	assert.Contains(t, empty, "_no items_")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "_ __ _____")
}

func TestRenderers(t *testing.T) {
	out, err := tui.Plain("# x")
	require.NoError(t, err)
	assert.Equal(t, "# x", out)

	out, err = tui.NewRenderer()("**bold**")
	require.NoError(t, err)
	assert.Contains(t, out, "bold")
}

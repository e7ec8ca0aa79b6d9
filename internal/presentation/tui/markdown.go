package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/rewind/pkg/session"
)

// HistoryMarkdown renders a history as a markdown table, newest last.
// The row under the pointer is marked with an arrow.
func HistoryMarkdown(h session.History) string {
	var b strings.Builder
	limit := "unbounded"
	if h.MaxLength > 0 {
		limit = fmt.Sprintf("max %d", h.MaxLength)
	}
	tracking := "on"
	if !h.Tracking {
		tracking = "off"
	}
	fmt.Fprintf(&b, "### History `%s`\n\n", h.Name)
	fmt.Fprintf(&b, "pointer %d, %d actions (%s), tracking %s\n\n", h.Pointer, h.Length, limit, tracking)

	if len(h.Actions) == 0 {
		b.WriteString("_empty_\n")
		return b.String()
	}

	b.WriteString("| | # | cycle | kind | state |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for i, a := range h.Actions {
		marker := ""
		if i == h.Pointer {
			marker = "→"
		}
		state := "undone"
		if a.Applied {
			state = "applied"
		}
		fmt.Fprintf(&b, "| %s | %d | %d | %s | %s |\n", marker, i, a.Cycle, a.Kind, state)
	}
	return b.String()
}

// DocumentMarkdown renders a document's attributes and items.
func DocumentMarkdown(s session.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Document `%s`\n\n", s.ID)

	if len(s.Attributes) == 0 {
		b.WriteString("_no attributes_\n\n")
	} else {
		keys := make([]string, 0, len(s.Attributes))
		for k := range s.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("| attribute | value |\n|---|---|\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "| %s | %v |\n", k, s.Attributes[k])
		}
		b.WriteString("\n")
	}

	if len(s.Items) == 0 {
		b.WriteString("_no items_\n")
		return b.String()
	}
	for i, item := range s.Items {
		fmt.Fprintf(&b, "%d. %v\n", i+1, item)
	}
	return b.String()
}

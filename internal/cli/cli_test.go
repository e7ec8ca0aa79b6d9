package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/rewind/internal/cli"
	"github.com/aretw0/rewind/internal/config"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/adapters/redis"
	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc() *session.Document {
	return session.NewDocument("demo", cycle.NewLoop(0))
}

func TestRunREPL(t *testing.T) {
	doc := newDoc()
	in := strings.NewReader(strings.Join([]string{
		"set title=hello; add a; add b",
		"add c",
		"undo",
		"bogus",
		"",
		"show",
		"history",
		"quit",
		"add never",
	}, "\n"))
	var out bytes.Buffer

	err := cli.RunREPL(context.Background(), doc, cli.REPLOptions{In: in, Out: &out})
	require.NoError(t, err)

	// 1. State reflects one undone cycle; lines after quit are ignored
	assert.Equal(t, []any{"a", "b"}, doc.Items.Items())
	assert.Equal(t, "hello", doc.Attrs.Get("title"))

	// 2. Output
	text := out.String()
	assert.Contains(t, text, "ok: 3 applied [pointer 2/3]")
	assert.Contains(t, text, "ok: 1 applied, 1 undone [pointer 2/4]")
	assert.Contains(t, text, "error: invalid command")
	assert.Contains(t, text, "| title | hello |")
	assert.Contains(t, text, "History `demo`")
	assert.NotContains(t, text, "> ", "no prompt without a terminal")
}

func TestRunREPL_EOFAndCancel(t *testing.T) {
	// 1. EOF ends cleanly
	err := cli.RunREPL(context.Background(), newDoc(), cli.REPLOptions{In: strings.NewReader("add a"), Out: &bytes.Buffer{}})
	assert.NoError(t, err)

	// 2. A cancelled context ends cleanly before reading
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := newDoc()
	err = cli.RunREPL(ctx, doc, cli.REPLOptions{In: strings.NewReader("add a\n"), Out: &bytes.Buffer{}, Prompt: true})
	assert.NoError(t, err)
	assert.Equal(t, 0, doc.Items.Len())
}

const shoppingScript = `
name: shopping
steps:
  - name: fill
    run: ["add milk", "add eggs; set total=2"]
    expect:
      items: [milk, eggs]
      attrs: {total: 2}
      length: 3
  - run: undo
    expect:
      items: []
      attrs: {}
      pointer: -1
      redoable: true
  - run: redo
    expect:
      undoable: true
      redoable: false
`

func TestScript(t *testing.T) {
	t.Run("Passes", func(t *testing.T) {
		script, err := cli.ParseScript(strings.NewReader(shoppingScript))
		require.NoError(t, err)
		assert.Equal(t, "shopping", script.Name)
		require.Len(t, script.Steps, 3)
		assert.Equal(t, []string{"undo"}, script.Steps[1].Run)

		var out bytes.Buffer
		require.NoError(t, cli.RunScript(script, newDoc(), &out))
		assert.Contains(t, out.String(), "ok   fill")
		assert.Contains(t, out.String(), "ok   step 2")
		assert.Contains(t, out.String(), "3 steps passed")
	})

	t.Run("Fails On Expectation", func(t *testing.T) {
		script, err := cli.ParseScript(strings.NewReader(`
steps:
  - run: add a
    expect: {length: 5, items: [b]}
`))
		require.NoError(t, err)

		err = cli.RunScript(script, newDoc(), &bytes.Buffer{})
		require.ErrorIs(t, err, cli.ErrExpectationFailed)
		assert.Contains(t, err.Error(), "step 1")
		assert.Contains(t, err.Error(), "length: want 5, got 1")
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("Fails On Bad Command", func(t *testing.T) {
		script, err := cli.ParseScript(strings.NewReader("steps:\n  - run: explode\n"))
		require.NoError(t, err)
		err = cli.RunScript(script, newDoc(), &bytes.Buffer{})
		assert.ErrorIs(t, err, domain.ErrInvalidCommand)
	})

	t.Run("Rejects Unknown Fields", func(t *testing.T) {
		_, err := cli.ParseScript(strings.NewReader("steps:\n  - runs: add a\n"))
		assert.Error(t, err)
	})
}

func TestNewServer(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Name = "main"

	s, err := cli.NewServer(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	defer s.Close()

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() { _ = s.Run(loopCtx) }()

	// 1. The default document exists
	assert.Equal(t, []string{"main"}, s.Sessions.List())

	// 2. Edits reach the journal and the metrics
	body, _ := json.Marshal(map[string][]string{"commands": {"add a"}})
	w := httptest.NewRecorder()
	s.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/documents/main/commands", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	entries, err := s.Journal.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EventCapture, entries[0].Type)
	assert.Equal(t, "main", entries[0].Manager)

	w = httptest.NewRecorder()
	s.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `rewind_actions_captured_total{kind="add",manager="main"} 1`)
}

func TestNewServer_RedisJournal(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()

	s, err := cli.NewServer(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer s.Close()

	assert.IsType(t, &redis.Journal{}, s.Journal)
}

func TestNewServer_JournalOutlivesShutdownSignal(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Name = "main"
	cfg.Redis.Addr = mr.Addr()

	ctx, cancel := context.WithCancel(context.Background())
	s, err := cli.NewServer(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	defer s.Close()

	// 1. The signal context ends, as on SIGINT
	cancel()

	// 2. Edits made while draining are still journaled
	doc, err := s.Sessions.Get("main")
	require.NoError(t, err)
	_, err = doc.Exec("add a")
	require.NoError(t, err)

	entries, err := s.Journal.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.EventCapture, entries[0].Type)
}

func TestNewServer_FileJournal(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Path = t.TempDir() + "/journal.jsonl"

	s, err := cli.NewServer(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

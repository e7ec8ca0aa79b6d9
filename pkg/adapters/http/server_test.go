package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/rewind/pkg/adapters/memory"
	rewindhttp "github.com/aretw0/rewind/pkg/adapters/http"
	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...rewindhttp.Option) http.Handler {
	t.Helper()
	loop := cycle.NewLoop(8)
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = loop.Run(ctx) }()
	t.Cleanup(cancel)

	return rewindhttp.NewHandler(session.NewManager(loop), opts...)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestServer_Health(t *testing.T) {
	h := newServer(t)

	w := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rewind-http")

	w = do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "metrics are opt-in")
}

func TestServer_UndoRedoFlow(t *testing.T) {
	h := newServer(t)

	// 1. Open
	w := do(t, h, http.MethodPut, "/documents/notes", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, h, http.MethodPut, "/documents/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 2. One request is one cycle
	w = do(t, h, http.MethodPost, "/documents/notes/commands", rewindhttp.CommandRequest{
		Commands: []string{"set title=draft", "add a", "add b"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cmd := decode[rewindhttp.CommandResponse](t, w)
	assert.Equal(t, 3, cmd.Result.Applied)
	assert.Equal(t, 3, cmd.History.Length)

	w = do(t, h, http.MethodPost, "/documents/notes/commands", rewindhttp.CommandRequest{
		Commands: []string{"set title=final"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// 3. Undo one cycle
	w = do(t, h, http.MethodPost, "/documents/notes/undo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rep := decode[rewindhttp.ReplayResponse](t, w)
	assert.Equal(t, 1, rep.Cycles)
	assert.Equal(t, "draft", rep.Document.Attributes["title"])
	assert.True(t, rep.History.Redoable)

	// 4. Undo everything, then redo everything
	w = do(t, h, http.MethodPost, "/documents/notes/undo?all=true", nil)
	rep = decode[rewindhttp.ReplayResponse](t, w)
	assert.Equal(t, 1, rep.Cycles)
	assert.Empty(t, rep.Document.Items)
	assert.False(t, rep.History.Undoable)

	w = do(t, h, http.MethodPost, "/documents/notes/redo?all=true", nil)
	rep = decode[rewindhttp.ReplayResponse](t, w)
	assert.Equal(t, 2, rep.Cycles)
	assert.Equal(t, "final", rep.Document.Attributes["title"])
	assert.Equal(t, []any{"a", "b"}, rep.Document.Items)

	// 5. Nothing left to redo
	w = do(t, h, http.MethodPost, "/documents/notes/redo", nil)
	rep = decode[rewindhttp.ReplayResponse](t, w)
	assert.Equal(t, 0, rep.Cycles)

	// 6. History, then clear
	w = do(t, h, http.MethodGet, "/documents/notes/history", nil)
	hist := decode[session.History](t, w)
	assert.Equal(t, 4, hist.Length)
	assert.Equal(t, 3, hist.Pointer)

	w = do(t, h, http.MethodDelete, "/documents/notes/history", nil)
	hist = decode[session.History](t, w)
	assert.Equal(t, 0, hist.Length)
	assert.Equal(t, -1, hist.Pointer)
}

func TestServer_CommandElementsAreNotSplit(t *testing.T) {
	h := newServer(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPut, "/documents/notes", nil).Code)

	w := do(t, h, http.MethodPost, "/documents/notes/commands", rewindhttp.CommandRequest{
		Commands: []string{"set note=a;b"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cmd := decode[rewindhttp.CommandResponse](t, w)
	assert.Equal(t, 1, cmd.Result.Applied)
	assert.Equal(t, "a;b", cmd.Document.Attributes["note"])
	assert.Equal(t, 1, cmd.History.Length)
}

func TestServer_Settings(t *testing.T) {
	h := newServer(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPut, "/documents/d", nil).Code)

	// 1. Tracking off: commands apply but are not recorded
	w := do(t, h, http.MethodPut, "/documents/d/tracking", rewindhttp.TrackingRequest{Enabled: false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[session.History](t, w).Tracking)

	w = do(t, h, http.MethodPost, "/documents/d/commands", rewindhttp.CommandRequest{Commands: []string{"add x"}})
	assert.Equal(t, 0, decode[rewindhttp.CommandResponse](t, w).History.Length)

	// 2. Max length bounds the history
	do(t, h, http.MethodPut, "/documents/d/tracking", rewindhttp.TrackingRequest{Enabled: true})
	for _, item := range []string{"a", "b", "c"} {
		do(t, h, http.MethodPost, "/documents/d/commands", rewindhttp.CommandRequest{Commands: []string{"add " + item}})
	}
	w = do(t, h, http.MethodPut, "/documents/d/max-length", rewindhttp.MaxLengthRequest{MaxLength: 2})
	hist := decode[session.History](t, w)
	assert.Equal(t, 2, hist.Length)
	assert.Equal(t, 2, hist.MaxLength)

	w = do(t, h, http.MethodPut, "/documents/d/max-length", map[string]int{"max_length": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_Errors(t *testing.T) {
	h := newServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"Missing Document", http.MethodGet, "/documents/nope", nil, http.StatusNotFound},
		{"Missing History", http.MethodPost, "/documents/nope/undo", nil, http.StatusNotFound},
		{"Close Missing", http.MethodDelete, "/documents/nope", nil, http.StatusNotFound},
		{"Bad Command", http.MethodPost, "/documents/nope/commands", rewindhttp.CommandRequest{Commands: []string{"explode"}}, http.StatusBadRequest},
		{"Bad Body", http.MethodPut, "/documents/nope/tracking", nil, http.StatusBadRequest},
		{"Merge Without Target", http.MethodPost, "/documents/nope/merge", rewindhttp.MergeRequest{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestServer_DocumentsAndMerge(t *testing.T) {
	h := newServer(t)
	do(t, h, http.MethodPut, "/documents/main", nil)
	do(t, h, http.MethodPut, "/documents/side", nil)

	w := do(t, h, http.MethodGet, "/documents", nil)
	assert.Equal(t, []string{"main", "side"}, decode[[]string](t, w))

	// 1. Merge side into main
	w = do(t, h, http.MethodPost, "/documents/side/merge", rewindhttp.MergeRequest{Into: "main"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"merged":true}`, w.Body.String())

	// 2. Side's edits land on main's history
	do(t, h, http.MethodPost, "/documents/side/commands", rewindhttp.CommandRequest{Commands: []string{"add x"}})
	w = do(t, h, http.MethodGet, "/documents/main/history", nil)
	assert.Equal(t, 1, decode[session.History](t, w).Length)

	// 3. Close
	w = do(t, h, http.MethodDelete, "/documents/side", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/documents", nil)
	assert.Equal(t, []string{"main"}, decode[[]string](t, w))
}

func TestServer_JournalAndMetrics(t *testing.T) {
	journal := memory.NewJournal(10)
	require.NoError(t, journal.Append(context.Background(), domain.Entry{ID: "1", Type: domain.EventCapture}))
	require.NoError(t, journal.Append(context.Background(), domain.Entry{ID: "2", Type: domain.EventUndo}))

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("rewind_up 1\n"))
	})
	h := newServer(t, rewindhttp.WithJournal(journal), rewindhttp.WithMetricsHandler(metrics))

	w := do(t, h, http.MethodGet, "/journal?n=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode[[]domain.Entry](t, w)
	require.Len(t, entries, 1)
	assert.Equal(t, "2", entries[0].ID)

	w = do(t, h, http.MethodGet, "/journal?n=many", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rewind_up")
}

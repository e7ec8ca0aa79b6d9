package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes documents and their histories over HTTP.
// Every handler touching a document runs on the session loop.
type Server struct {
	Sessions *session.Manager
	Journal  ports.Journal

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithJournal serves the journal at GET /journal.
func WithJournal(j ports.Journal) Option {
	return func(s *Server) {
		s.Journal = j
	}
}

// WithMetricsHandler serves h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger configures request error logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler. The session loop must be running.
func NewHandler(sessions *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	if s.Journal != nil {
		r.Get("/journal", s.GetJournal)
	}

	r.Get("/documents", s.ListDocuments)
	r.Route("/documents/{id}", func(r chi.Router) {
		r.Put("/", s.OpenDocument)
		r.Get("/", s.GetDocument)
		r.Delete("/", s.CloseDocument)
		r.Post("/commands", s.ExecCommands)
		r.Get("/history", s.GetHistory)
		r.Delete("/history", s.ClearHistory)
		r.Post("/undo", s.Undo)
		r.Post("/redo", s.Redo)
		r.Put("/tracking", s.SetTracking)
		r.Put("/max-length", s.SetMaxLength)
		r.Post("/merge", s.Merge)
	})

	return r
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "rewind-http",
		"version": strings.TrimSpace(rewind.Version),
	})
}

// GetJournal handles GET /journal?n=N.
func (s *Server) GetJournal(w http.ResponseWriter, r *http.Request) {
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		var err error
		if n, err = strconv.Atoi(raw); err != nil {
			http.Error(w, "n must be a number", http.StatusBadRequest)
			return
		}
	}

	entries, err := s.Journal.Recent(r.Context(), n)
	if err != nil {
		s.fail(w, "journal read failed", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ListDocuments handles GET /documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sessions.List())
}

// OpenDocument handles PUT /documents/{id}.
func (s *Server) OpenDocument(w http.ResponseWriter, r *http.Request) {
	var snap session.Snapshot
	created := false
	err := s.call(r.Context(), func() error {
		doc, isNew, err := s.Sessions.Open(chi.URLParam(r, "id"))
		if err != nil {
			return err
		}
		created = isNew
		snap = doc.Snapshot()
		return nil
	})
	if err != nil {
		s.handleError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, snap)
}

// GetDocument handles GET /documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	s.withDocument(w, r, func(doc *session.Document) (any, error) {
		return doc.Snapshot(), nil
	})
}

// CloseDocument handles DELETE /documents/{id}.
func (s *Server) CloseDocument(w http.ResponseWriter, r *http.Request) {
	err := s.call(r.Context(), func() error {
		return s.Sessions.Close(chi.URLParam(r, "id"))
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CommandRequest is the body of POST /documents/{id}/commands.
// All commands run as one unit of work and so form one undo cycle.
type CommandRequest struct {
	Commands []string `json:"commands"`
}

// CommandResponse reports the outcome of a command batch.
type CommandResponse struct {
	Result   session.Result   `json:"result"`
	Document session.Snapshot `json:"document"`
	History  session.History  `json:"history"`
}

// ExecCommands handles POST /documents/{id}/commands.
func (s *Server) ExecCommands(w http.ResponseWriter, r *http.Request) {
	var body CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmds, err := session.ParseCommands(body.Commands)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.withDocument(w, r, func(doc *session.Document) (any, error) {
		res, err := doc.Apply(cmds...)
		if err != nil {
			return nil, err
		}
		return CommandResponse{Result: res, Document: doc.Snapshot(), History: doc.Inspect()}, nil
	})
}

// GetHistory handles GET /documents/{id}/history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	s.withDocument(w, r, func(doc *session.Document) (any, error) {
		return doc.Inspect(), nil
	})
}

// ClearHistory handles DELETE /documents/{id}/history.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	s.withDocument(w, r, func(doc *session.Document) (any, error) {
		doc.History.Clear()
		return doc.Inspect(), nil
	})
}

// ReplayResponse reports how many cycles an undo or redo replayed.
type ReplayResponse struct {
	Cycles   int              `json:"cycles"`
	Document session.Snapshot `json:"document"`
	History  session.History  `json:"history"`
}

// Undo handles POST /documents/{id}/undo[?all=true].
func (s *Server) Undo(w http.ResponseWriter, r *http.Request) {
	s.replay(w, r, session.CmdUndo, session.CmdUndoAll)
}

// Redo handles POST /documents/{id}/redo[?all=true].
func (s *Server) Redo(w http.ResponseWriter, r *http.Request) {
	s.replay(w, r, session.CmdRedo, session.CmdRedoAll)
}

func (s *Server) replay(w http.ResponseWriter, r *http.Request, one, all string) {
	name := one
	if ok, _ := strconv.ParseBool(r.URL.Query().Get("all")); ok {
		name = all
	}
	s.withDocument(w, r, func(doc *session.Document) (any, error) {
		res, err := doc.Apply(session.Command{Name: name})
		if err != nil {
			return nil, err
		}
		return ReplayResponse{
			Cycles:   res.Undone + res.Redone,
			Document: doc.Snapshot(),
			History:  doc.Inspect(),
		}, nil
	})
}

// TrackingRequest is the body of PUT /documents/{id}/tracking.
type TrackingRequest struct {
	Enabled bool `json:"enabled"`
}

// SetTracking handles PUT /documents/{id}/tracking.
func (s *Server) SetTracking(w http.ResponseWriter, r *http.Request) {
	var body TrackingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	s.withDocument(w, r, func(doc *session.Document) (any, error) {
		if body.Enabled {
			doc.History.StartTracking()
		} else {
			doc.History.StopTracking()
		}
		return doc.Inspect(), nil
	})
}

// MaxLengthRequest is the body of PUT /documents/{id}/max-length.
type MaxLengthRequest struct {
	MaxLength int `json:"max_length"`
}

// SetMaxLength handles PUT /documents/{id}/max-length.
func (s *Server) SetMaxLength(w http.ResponseWriter, r *http.Request) {
	var body MaxLengthRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.MaxLength < 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	s.withDocument(w, r, func(doc *session.Document) (any, error) {
		doc.History.SetMaxLength(body.MaxLength)
		return doc.Inspect(), nil
	})
}

// MergeRequest is the body of POST /documents/{id}/merge.
type MergeRequest struct {
	Into string `json:"into"`
}

// Merge handles POST /documents/{id}/merge.
func (s *Server) Merge(w http.ResponseWriter, r *http.Request) {
	var body MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Into == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var merged bool
	err := s.call(r.Context(), func() error {
		var err error
		merged, err = s.Sessions.Merge(chi.URLParam(r, "id"), body.Into)
		return err
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"merged": merged})
}

// -- Helpers --

func (s *Server) call(ctx context.Context, fn func() error) error {
	return s.Sessions.Loop().Call(ctx, fn)
}

// withDocument runs fn on the loop against the document named in the URL
// and writes its result as JSON.
func (s *Server) withDocument(w http.ResponseWriter, r *http.Request, fn func(*session.Document) (any, error)) {
	var out any
	err := s.call(r.Context(), func() error {
		doc, err := s.Sessions.Get(chi.URLParam(r, "id"))
		if err != nil {
			return err
		}
		out, err = fn(doc)
		return err
	})
	if err != nil {
		s.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidCommand):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		s.fail(w, "request failed", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "error", err)
	http.Error(w, msg, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

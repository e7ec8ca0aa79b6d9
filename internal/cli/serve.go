package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/config"
	"github.com/aretw0/rewind/pkg/adapters/file"
	httpAdapter "github.com/aretw0/rewind/pkg/adapters/http"
	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/adapters/redis"
	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/aretw0/rewind/pkg/observability"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/aretw0/rewind/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
)

const tracerName = "github.com/aretw0/rewind"

// Server is a fully wired HTTP inspector: documents on a shared loop, hooks
// feeding logs, metrics, traces and the journal.
type Server struct {
	Handler  http.Handler
	Sessions *session.Manager
	Journal  ports.Journal
	Registry *prometheus.Registry

	loop    *cycle.Loop
	closers []io.Closer
}

// NewServer wires a Server from cfg and opens the default document cfg.Name.
// The caller must run the returned server's loop with Run.
func NewServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	s := &Server{
		Registry: prometheus.NewRegistry(),
		loop:     cycle.NewLoop(64),
	}

	if err := s.Registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("failed to register go collector: %w", err)
	}
	metrics, err := observability.NewMetrics(s.Registry)
	if err != nil {
		return nil, err
	}

	s.Journal, err = s.openJournal(cfg, logger)
	if err != nil {
		return nil, err
	}

	hooks := observability.MultiHooks(
		observability.LoggingHooks(logger),
		metrics.Hooks(),
		observability.TracingHooks(otel.Tracer(tracerName)),
		observability.JournalHooks(context.WithoutCancel(ctx), s.Journal, logger),
	)

	s.Sessions = session.NewManager(s.loop,
		session.WithLogger(logger),
		session.WithDocumentOptions(
			rewind.WithTracking(cfg.Tracking),
			rewind.WithMaxLength(cfg.MaxLength),
			rewind.WithLogger(logger),
			rewind.WithLifecycleHooks(hooks),
		),
	)
	if _, _, err := s.Sessions.Open(cfg.Name); err != nil {
		return nil, err
	}

	s.Handler = httpAdapter.NewHandler(s.Sessions,
		httpAdapter.WithJournal(s.Journal),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})),
		httpAdapter.WithLogger(logger),
	)
	return s, nil
}

func (s *Server) openJournal(cfg config.Config, logger *slog.Logger) (ports.Journal, error) {
	switch {
	case cfg.Redis.Addr != "":
		logger.Info("Journal", "backend", "redis", "addr", cfg.Redis.Addr)
		j := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithMaxLen(cfg.Redis.MaxLen),
		)
		s.closers = append(s.closers, j)
		return j, nil
	case cfg.Journal.Path != "":
		logger.Info("Journal", "backend", "file", "path", cfg.Journal.Path)
		j, err := file.New(cfg.Journal.Path)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, j)
		return j, nil
	default:
		logger.Info("Journal", "backend", "memory", "capacity", cfg.Journal.Capacity)
		return memory.NewJournal(cfg.Journal.Capacity), nil
	}
}

// Run drives the document loop until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.loop.Run(ctx)
}

// Close releases the journal backend.
func (s *Server) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// RunServe starts the inspector on cfg.HTTP.Addr and blocks until ctx is
// cancelled, then shuts down gracefully.
func RunServe(ctx context.Context, cfg config.Config, logger *slog.Logger, out io.Writer) error {
	s, err := NewServer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("Failed to close journal", "error", err)
		}
	}()

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.HTTP.Addr, err)
	}

	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go func() { _ = s.Run(loopCtx) }()

	srv := &http.Server{
		Handler:           s.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(out, "Serving document '%s' on http://%s", cfg.Name, ln.Addr())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		printSystemMessage(out, "Shutting down...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(out, "Server stopped gracefully.")
		return nil
	}
}

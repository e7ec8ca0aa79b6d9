package rewind

import (
	"log/slog"

	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/aretw0/rewind/pkg/registry"
)

// Option defines a functional option for configuring the Manager.
type Option func(*Manager)

// WithTracking sets the initial tracking state (default: off).
func WithTracking(on bool) Option {
	return func(m *Manager) {
		m.tracking = on
	}
}

// WithMaxLength bounds the history. 0, the default, means unbounded.
func WithMaxLength(n int) Option {
	return func(m *Manager) {
		m.maxLength = n
	}
}

// WithScheduler sets where units of work end.
// Without it every mutation is its own cycle.
func WithScheduler(s cycle.Scheduler) Option {
	return func(m *Manager) {
		m.scheduler = s
	}
}

// WithRegistry sets the registry the manager's own undo types fall back to.
// Defaults to registry.Default().
func WithRegistry(r *registry.Registry) Option {
	return func(m *Manager) {
		m.defaults = r
	}
}

// WithLogger sets a custom structured logger for the manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// WithName names the manager in logs, metrics and journal entries.
func WithName(name string) Option {
	return func(m *Manager) {
		m.name = name
	}
}

// WithObjects registers objects as soon as the manager is created.
func WithObjects(objs ...ports.Notifier) Option {
	return func(m *Manager) {
		m.initial = append(m.initial, objs...)
	}
}

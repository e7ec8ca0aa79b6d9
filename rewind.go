package rewind

import (
	"log/slog"
	"time"

	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/internal/runtime"
	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/aretw0/rewind/pkg/registry"
)

// DefaultName is the manager name used when WithName is not given.
const DefaultName = "default"

// Manager records mutations of registered objects and replays them.
// It is the high-level entry point of the library.
//
// A Manager is not safe for concurrent use. Hosts that receive work from
// several goroutines should funnel it through a cycle.Loop.
type Manager struct {
	name     string
	stack    *runtime.Stack
	objects  *runtime.ObjectRegistry
	types    *registry.Registry
	listener *listener
	hooks    domain.LifecycleHooks
	logger   *slog.Logger

	tracking  bool
	maxLength int
	scheduler cycle.Scheduler
	defaults  *registry.Registry
	initial   []ports.Notifier
}

// listener routes every notification of a registered object to the manager.
// There is one per manager so that On/Off always refer to the same value.
type listener struct {
	m *Manager
}

func (l *listener) Notify(kind string, args ...any) {
	l.m.capture(kind, args)
}

// New creates a manager with its own stack and instance registry.
func New(opts ...Option) *Manager {
	m := &Manager{
		name:    DefaultName,
		objects: runtime.NewObjectRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	m.logger = m.logger.With("manager", m.name)
	if m.defaults == nil {
		m.defaults = registry.Default()
	}
	m.types = m.defaults.Derive()
	m.stack = runtime.NewStack(cycle.NewIndexer(m.scheduler), m.maxLength)
	m.stack.SetTracking(m.tracking)
	m.listener = &listener{m: m}

	m.Register(m.initial...)
	m.initial = nil
	return m
}

// Name returns the name given with WithName.
func (m *Manager) Name() string {
	return m.name
}

// StartTracking starts recording mutations.
func (m *Manager) StartTracking() {
	m.stack.SetTracking(true)
}

// StopTracking stops recording mutations. History is kept.
func (m *Manager) StopTracking() {
	m.stack.SetTracking(false)
}

// IsTracking reports whether mutations are recorded.
// Tracking belongs to the stack, so merged managers share it.
func (m *Manager) IsTracking() bool {
	return m.stack.Tracking()
}

// Register starts observing objects. Objects already registered are skipped.
func (m *Manager) Register(objs ...ports.Notifier) {
	for _, obj := range objs {
		if m.objects.Register(obj) {
			obj.On(m.listener)
		}
	}
}

// Unregister stops observing objects. Unknown objects are skipped.
func (m *Manager) Unregister(objs ...ports.Notifier) {
	for _, obj := range objs {
		if stored, ok := m.objects.Unregister(obj); ok {
			stored.Off(m.listener)
		}
	}
}

// UnregisterAll detaches the manager from every object. It is the only
// teardown a manager needs.
func (m *Manager) UnregisterAll() {
	m.Unregister(m.objects.All()...)
}

// IsRegistered reports whether obj is observed by this manager.
func (m *Manager) IsRegistered(obj ports.Notifier) bool {
	return m.objects.IsRegistered(obj)
}

// Objects returns the registered objects in registration order.
func (m *Manager) Objects() []ports.Notifier {
	return m.objects.All()
}

func (m *Manager) capture(kind string, args []any) {
	res := m.stack.Capture(kind, args, m.types)
	if res.Action == nil {
		return
	}

	m.logger.Debug("action captured",
		"kind", kind,
		"cycle", res.Action.CycleIndex,
		"pointer", m.stack.Pointer(),
		"length", m.stack.Len(),
	)
	if m.hooks.OnCapture != nil {
		m.hooks.OnCapture(m.actionEvent(domain.EventCapture, res.Action))
	}
	m.evicted(res.Evicted)
}

func (m *Manager) evicted(actions []*domain.Action) {
	for _, a := range actions {
		m.logger.Debug("action evicted", "kind", a.Kind, "cycle", a.CycleIndex)
		if m.hooks.OnEvict != nil {
			m.hooks.OnEvict(m.actionEvent(domain.EventEvict, a))
		}
	}
}

// Undo reverts the most recent cycle. It returns false when there is nothing
// to undo or a replay is already running.
func (m *Manager) Undo() bool {
	return m.undo(false) > 0
}

// UndoAll reverts every cycle and returns how many were reverted.
func (m *Manager) UndoAll() int {
	return m.undo(true)
}

// Redo reapplies the next undone cycle.
func (m *Manager) Redo() bool {
	return m.redo(false) > 0
}

// RedoAll reapplies every undone cycle and returns how many were reapplied.
func (m *Manager) RedoAll() int {
	return m.redo(true)
}

func (m *Manager) undo(all bool) int {
	n := 0
	for {
		started := time.Now()
		group := m.stack.UndoCycle()
		if group == nil {
			return n
		}
		n++
		m.replayed(domain.EventUndo, group, started, m.hooks.OnUndo)
		if !all {
			return n
		}
	}
}

func (m *Manager) redo(all bool) int {
	n := 0
	for {
		started := time.Now()
		group := m.stack.RedoCycle()
		if group == nil {
			return n
		}
		n++
		m.replayed(domain.EventRedo, group, started, m.hooks.OnRedo)
		if !all {
			return n
		}
	}
}

func (m *Manager) replayed(t domain.EventType, group []*domain.Action, started time.Time, hook func(*domain.CycleEvent)) {
	finished := time.Now()
	m.logger.Debug("cycle replayed",
		"direction", string(t),
		"cycle", group[0].CycleIndex,
		"actions", len(group),
		"pointer", m.stack.Pointer(),
		"length", m.stack.Len(),
	)
	if hook == nil {
		return
	}
	hook(&domain.CycleEvent{
		EventBase:  m.base(t),
		CycleIndex: group[0].CycleIndex,
		Actions:    group,
		Pointer:    m.stack.Pointer(),
		Length:     m.stack.Len(),
		StartedAt:  started,
		FinishedAt: finished,
	})
}

// IsUndoable reports whether Undo would do something.
func (m *Manager) IsUndoable() bool {
	return m.stack.CanUndo()
}

// IsRedoable reports whether Redo would do something.
func (m *Manager) IsRedoable() bool {
	return m.stack.CanRedo()
}

// Clear drops the whole history. Objects stay registered.
func (m *Manager) Clear() {
	m.stack.Clear()
	m.logger.Debug("history cleared")
	if m.hooks.OnClear != nil {
		m.hooks.OnClear(m.stackEvent(domain.EventClear))
	}
}

// Merge makes m record onto other's stack from now on.
//
// It lets a manager with special undo types write into a shared history
// while keeping its own handlers. It returns false, changing nothing, when
// other is nil, is m, or already shares m's stack. Entries already on m's
// previous stack stay there.
func (m *Manager) Merge(other *Manager) bool {
	if other == nil || other == m || other.stack == nil || other.stack == m.stack {
		return false
	}

	objs := m.objects.All()
	for _, obj := range objs {
		obj.Off(m.listener)
	}
	m.stack = other.stack
	for _, obj := range objs {
		obj.On(m.listener)
	}

	m.logger.Debug("stack merged", "into", other.name, "objects", len(objs))
	if m.hooks.OnMerge != nil {
		m.hooks.OnMerge(m.stackEvent(domain.EventMerge))
	}
	return true
}

// SharesStackWith reports whether m and other record onto the same stack.
func (m *Manager) SharesStackWith(other *Manager) bool {
	return other != nil && m.stack == other.stack
}

// Len returns the number of actions in the history.
func (m *Manager) Len() int {
	return m.stack.Len()
}

// Pointer returns the index of the most recent applied action, or -1.
func (m *Manager) Pointer() int {
	return m.stack.Pointer()
}

// Actions returns a copy of the history, oldest first.
func (m *Manager) Actions() []*domain.Action {
	return m.stack.Actions()
}

// MaxLength returns the history bound; 0 means unbounded.
func (m *Manager) MaxLength() int {
	return m.stack.MaxLength()
}

// SetMaxLength changes the history bound, evicting the oldest actions that
// no longer fit.
func (m *Manager) SetMaxLength(n int) {
	m.evicted(m.stack.SetMaxLength(n))
}

func (m *Manager) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Manager: m.name}
}

func (m *Manager) actionEvent(t domain.EventType, a *domain.Action) *domain.ActionEvent {
	return &domain.ActionEvent{
		EventBase: m.base(t),
		Action:    a,
		Pointer:   m.stack.Pointer(),
		Length:    m.stack.Len(),
	}
}

func (m *Manager) stackEvent(t domain.EventType) *domain.StackEvent {
	return &domain.StackEvent{
		EventBase: m.base(t),
		Pointer:   m.stack.Pointer(),
		Length:    m.stack.Len(),
	}
}

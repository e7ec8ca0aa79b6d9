package rewind

import (
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/registry"
)

// AddUndoType registers a handler for this manager only.
func (m *Manager) AddUndoType(kind string, h domain.Handler) error {
	return m.types.Add(kind, h)
}

// ChangeUndoType overrides parts of a handler for this manager only. The
// shared handler it resolves to is copied, never modified.
func (m *Manager) ChangeUndoType(kind string, partial domain.Handler) error {
	return m.types.Modify(kind, partial)
}

// RemoveUndoType drops this manager's override of kind.
func (m *Manager) RemoveUndoType(kind string) {
	m.types.Remove(kind)
}

// AddUndoTypes is the bulk form of AddUndoType.
func (m *Manager) AddUndoTypes(handlers map[string]domain.Handler) error {
	return m.types.AddAll(handlers)
}

// ChangeUndoTypes is the bulk form of ChangeUndoType.
func (m *Manager) ChangeUndoTypes(partials map[string]domain.Handler) error {
	return m.types.ModifyAll(partials)
}

// RemoveUndoTypes is the bulk form of RemoveUndoType.
func (m *Manager) RemoveUndoTypes(kinds ...string) {
	m.types.RemoveAll(kinds...)
}

// UndoTypes lists every kind this manager can capture.
func (m *Manager) UndoTypes() []string {
	return m.types.Kinds()
}

// AddUndoType registers a handler in the process-wide default registry.
// Every manager that has not overridden kind picks it up.
func AddUndoType(kind string, h domain.Handler) error {
	return registry.Default().Add(kind, h)
}

// ChangeUndoType modifies a handler in the process-wide default registry.
func ChangeUndoType(kind string, partial domain.Handler) error {
	return registry.Default().Modify(kind, partial)
}

// RemoveUndoType removes a handler from the process-wide default registry.
func RemoveUndoType(kind string) {
	registry.Default().Remove(kind)
}

// AddUndoTypes is the bulk form of AddUndoType.
func AddUndoTypes(handlers map[string]domain.Handler) error {
	return registry.Default().AddAll(handlers)
}

// ChangeUndoTypes is the bulk form of ChangeUndoType.
func ChangeUndoTypes(partials map[string]domain.Handler) error {
	return registry.Default().ModifyAll(partials)
}

// RemoveUndoTypes is the bulk form of RemoveUndoType.
func RemoveUndoTypes(kinds ...string) {
	registry.Default().RemoveAll(kinds...)
}

package observability

import (
	"log/slog"

	"github.com/aretw0/rewind/pkg/domain"
)

// LoggingHooks logs every history event at Debug.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCapture: func(e *domain.ActionEvent) {
			logger.Debug("Captured", "manager", e.Manager, "kind", e.Action.Kind, "cycle", e.Action.CycleIndex, "length", e.Length)
		},
		OnEvict: func(e *domain.ActionEvent) {
			logger.Debug("Evicted", "manager", e.Manager, "kind", e.Action.Kind, "cycle", e.Action.CycleIndex)
		},
		OnUndo: func(e *domain.CycleEvent) {
			logger.Debug("Undo", "manager", e.Manager, "cycle", e.CycleIndex, "kinds", kindsOf(e.Actions), "pointer", e.Pointer)
		},
		OnRedo: func(e *domain.CycleEvent) {
			logger.Debug("Redo", "manager", e.Manager, "cycle", e.CycleIndex, "kinds", kindsOf(e.Actions), "pointer", e.Pointer)
		},
		OnClear: func(e *domain.StackEvent) {
			logger.Debug("Cleared", "manager", e.Manager)
		},
		OnMerge: func(e *domain.StackEvent) {
			logger.Debug("Merged", "manager", e.Manager, "length", e.Length)
		},
	}
}

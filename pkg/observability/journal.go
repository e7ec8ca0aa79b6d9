package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/google/uuid"
)

// JournalHooks appends an entry to j for every history event.
// Append failures are logged and never reach the manager.
func JournalHooks(ctx context.Context, j ports.Journal, logger *slog.Logger) domain.LifecycleHooks {
	write := func(entry domain.Entry) {
		if err := j.Append(ctx, entry); err != nil {
			logger.Warn("failed to append journal entry", "type", entry.Type, "error", err)
		}
	}

	return domain.LifecycleHooks{
		OnCapture: func(e *domain.ActionEvent) { write(domain.EntryFromAction(uuid.NewString(), e)) },
		OnEvict:   func(e *domain.ActionEvent) { write(domain.EntryFromAction(uuid.NewString(), e)) },
		OnUndo:    func(e *domain.CycleEvent) { write(domain.EntryFromCycle(uuid.NewString(), e)) },
		OnRedo:    func(e *domain.CycleEvent) { write(domain.EntryFromCycle(uuid.NewString(), e)) },
		OnClear:   func(e *domain.StackEvent) { write(domain.EntryFromStack(uuid.NewString(), e)) },
		OnMerge:   func(e *domain.StackEvent) { write(domain.EntryFromStack(uuid.NewString(), e)) },
	}
}

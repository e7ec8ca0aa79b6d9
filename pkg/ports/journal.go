package ports

import (
	"context"
	"errors"

	"github.com/aretw0/rewind/pkg/domain"
)

// ErrJournalClosed is returned by journals that no longer accept entries.
var ErrJournalClosed = errors.New("journal closed")

// Journal records history events for monitoring and audit.
// It is a capped, append-only feed; it is never used to rebuild a stack.
type Journal interface {
	// Append records an entry.
	Append(ctx context.Context, entry domain.Entry) error

	// Recent returns up to n of the newest entries in chronological order.
	// n <= 0 returns every retained entry.
	Recent(ctx context.Context, n int) ([]domain.Entry, error)
}

package ports

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunJournalContract runs a suite of tests to verify that a Journal implementation
// adheres to the defined interface contract. The journal must start empty and
// retain at least five entries.
func RunJournalContract(t *testing.T, journal Journal) {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Millisecond)

	entry := func(i int, typ domain.EventType) domain.Entry {
		return domain.Entry{
			ID:         fmt.Sprintf("contract-%d", i),
			Type:       typ,
			Manager:    "contract",
			Kinds:      []string{domain.KindChange},
			CycleIndex: i,
			Pointer:    i,
			Length:     i + 1,
			Actions:    []string{fmt.Sprintf("action-%d", i)},
			Timestamp:  base.Add(time.Duration(i) * time.Millisecond),
		}
	}

	t.Run("Recent On Empty Journal", func(t *testing.T) {
		entries, err := journal.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Append and Recent", func(t *testing.T) {
		// 1. Append three entries
		for i := 0; i < 3; i++ {
			require.NoError(t, journal.Append(ctx, entry(i, domain.EventCapture)), "Append should not return error")
		}

		// 2. Read them back in chronological order
		entries, err := journal.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for i, e := range entries {
			assert.Equal(t, fmt.Sprintf("contract-%d", i), e.ID)
			assert.Equal(t, domain.EventCapture, e.Type)
			assert.Equal(t, "contract", e.Manager)
			assert.Equal(t, []string{domain.KindChange}, e.Kinds)
			assert.Equal(t, i, e.CycleIndex)
			assert.True(t, entry(i, domain.EventCapture).Timestamp.Equal(e.Timestamp))
		}
	})

	t.Run("Recent Limits To Newest", func(t *testing.T) {
		require.NoError(t, journal.Append(ctx, entry(3, domain.EventUndo)))

		entries, err := journal.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "contract-2", entries[0].ID)
		assert.Equal(t, "contract-3", entries[1].ID)
		assert.Equal(t, domain.EventUndo, entries[1].Type)
	})

	t.Run("Recent Larger Than Journal", func(t *testing.T) {
		entries, err := journal.Recent(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, entries, 4)
	})
}

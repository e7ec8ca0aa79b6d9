package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/rewind/pkg/adapters/memory"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.Journal = (*memory.Journal)(nil)

func TestJournal_Contract(t *testing.T) {
	ports.RunJournalContract(t, memory.NewJournal(10))
}

func TestJournal_Overwrite(t *testing.T) {
	ctx := context.Background()
	j := memory.NewJournal(3)

	// 1. Fill past capacity
	for i := 0; i < 5; i++ {
		require.NoError(t, j.Append(ctx, domain.Entry{ID: fmt.Sprintf("e%d", i), Type: domain.EventCapture}))
	}
	assert.Equal(t, 3, j.Len())

	// 2. Only the newest three survive, oldest first
	entries, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"e2", "e3", "e4"}, ids)

	// 3. A limited read keeps the tail
	entries, err = j.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "e4", entries[0].ID)
}

func TestJournal_Isolation(t *testing.T) {
	ctx := context.Background()
	j := memory.NewJournal(0)

	kinds := []string{domain.KindAdd}
	require.NoError(t, j.Append(ctx, domain.Entry{ID: "x", Kinds: kinds}))
	kinds[0] = "mutated"

	entries, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{domain.KindAdd}, entries[0].Kinds)

	entries[0].Kinds[0] = "mutated"
	again, err := j.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.KindAdd}, again[0].Kinds)
}

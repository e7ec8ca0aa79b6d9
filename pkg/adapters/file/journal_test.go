package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/rewind/pkg/adapters/file"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.Journal = (*file.Journal)(nil)

func TestFileJournal_Contract(t *testing.T) {
	j, err := file.New(filepath.Join(t.TempDir(), "nested", "journal.jsonl"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	ports.RunJournalContract(t, j)
}

func TestFileJournal_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	// 1. Write with one handle
	j, err := file.New(path)
	require.NoError(t, err)
	require.NoError(t, j.Append(ctx, domain.Entry{ID: "first", Type: domain.EventCapture}))
	require.NoError(t, j.Close())

	// 2. Appends after close are refused
	assert.ErrorIs(t, j.Append(ctx, domain.Entry{ID: "late"}), ports.ErrJournalClosed)

	// 3. A second handle sees and extends the same file
	j2, err := file.New(path)
	require.NoError(t, err)
	defer j2.Close()
	require.NoError(t, j2.Append(ctx, domain.Entry{ID: "second", Type: domain.EventUndo}))

	entries, err := j2.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].ID)
	assert.Equal(t, "second", entries[1].ID)
}

func TestFileJournal_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), 0644))

	j, err := file.New(path)
	require.NoError(t, err)
	defer j.Close()

	_, err = j.Recent(context.Background(), 0)
	assert.ErrorContains(t, err, "journal line 1")
}

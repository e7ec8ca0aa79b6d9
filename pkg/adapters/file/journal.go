package file

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
)

// Journal implements ports.Journal as a JSON lines file.
// The file is append-only and never trimmed.
type Journal struct {
	Path string

	mu     sync.Mutex
	f      *os.File
	closed bool
}

// New opens (or creates) the journal at path.
// If path is empty, it defaults to ".rewind/journal.jsonl".
func New(path string) (*Journal, error) {
	if path == "" {
		path = filepath.Join(".rewind", "journal.jsonl")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to ensure journal directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	return &Journal{Path: path, f: f}, nil
}

// Append writes the entry as one line and syncs the file.
func (j *Journal) Append(ctx context.Context, entry domain.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ports.ErrJournalClosed
	}
	if _, err := j.f.Write(data); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	if err := j.f.Sync(); err != nil {
		return fmt.Errorf("failed to fsync journal: %w", err)
	}
	return nil
}

// Recent reads the file and returns up to n of the newest entries.
func (j *Journal) Recent(ctx context.Context, n int) ([]domain.Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Entry{}, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	entries := []domain.Entry{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry domain.Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("journal line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	if n > 0 && n < len(entries) {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

// Close releases the file. Further appends fail with ports.ErrJournalClosed.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.f.Close()
}

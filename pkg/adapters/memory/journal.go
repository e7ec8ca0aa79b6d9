package memory

import (
	"context"
	"sync"

	"github.com/aretw0/rewind/pkg/domain"
)

// DefaultCapacity bounds a Journal created with a non-positive capacity.
const DefaultCapacity = 1000

// Journal implements ports.Journal in memory as a ring buffer.
// Once full, each append overwrites the oldest entry.
// Safe for concurrent use.
type Journal struct {
	mu      sync.RWMutex
	entries []domain.Entry
	start   int
	size    int
}

// NewJournal creates a journal retaining at most capacity entries.
func NewJournal(capacity int) *Journal {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Journal{entries: make([]domain.Entry, capacity)}
}

// Append stores a copy of the entry.
func (j *Journal) Append(ctx context.Context, entry domain.Entry) error {
	entry = cloneEntry(entry)

	j.mu.Lock()
	defer j.mu.Unlock()

	capacity := len(j.entries)
	if j.size < capacity {
		j.entries[(j.start+j.size)%capacity] = entry
		j.size++
		return nil
	}
	j.entries[j.start] = entry
	j.start = (j.start + 1) % capacity
	return nil
}

// Recent returns up to n of the newest entries, oldest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]domain.Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if n <= 0 || n > j.size {
		n = j.size
	}
	out := make([]domain.Entry, 0, n)
	capacity := len(j.entries)
	for i := j.size - n; i < j.size; i++ {
		out = append(out, cloneEntry(j.entries[(j.start+i)%capacity]))
	}
	return out, nil
}

// Len reports how many entries are retained.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.size
}

// Copy on the way in and out so callers can't mutate retained slices.
func cloneEntry(e domain.Entry) domain.Entry {
	if e.Kinds != nil {
		e.Kinds = append([]string(nil), e.Kinds...)
	}
	if e.Actions != nil {
		e.Actions = append([]string(nil), e.Actions...)
	}
	return e
}

package session

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/internal/logging"
	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/aretw0/rewind/pkg/domain"
)

// Manager keeps open documents by ID. All documents share one loop, so a
// host that runs the loop serializes every edit.
//
// Opening, listing and closing are safe for concurrent use; editing a
// document must happen on the loop.
type Manager struct {
	loop    *cycle.Loop
	options []rewind.Option
	logger  *slog.Logger

	mu   sync.Mutex
	docs map[string]*Document
}

// Option configures the Manager.
type Option func(*Manager)

// WithDocumentOptions adds options applied to every document's history.
func WithDocumentOptions(opts ...rewind.Option) Option {
	return func(m *Manager) {
		m.options = append(m.options, opts...)
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager whose documents run on loop.
func NewManager(loop *cycle.Loop, opts ...Option) *Manager {
	m := &Manager{
		loop:   loop,
		docs:   make(map[string]*Document),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Loop returns the loop shared by every document.
func (m *Manager) Loop() *cycle.Loop {
	return m.loop
}

// Open returns the document with id, creating it if needed.
// created reports whether it was new.
func (m *Manager) Open(id string) (doc *Document, created bool, err error) {
	if id == "" {
		return nil, false, fmt.Errorf("%w: empty id", domain.ErrDocumentNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if doc, ok := m.docs[id]; ok {
		return doc, false, nil
	}
	doc = NewDocument(id, m.loop, m.options...)
	m.docs[id] = doc
	m.logger.Debug("document opened", "id", id)
	return doc, true, nil
}

// Get returns an open document.
func (m *Manager) Get(id string) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	return doc, nil
}

// List returns the IDs of open documents, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close forgets a document and detaches its history from its objects.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	doc, ok := m.docs[id]
	delete(m.docs, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	doc.History.UnregisterAll()
	m.logger.Debug("document closed", "id", id)
	return nil
}

// Merge makes document from record onto into's history.
// It returns false when both already share a history.
func (m *Manager) Merge(from, into string) (bool, error) {
	src, err := m.Get(from)
	if err != nil {
		return false, err
	}
	dst, err := m.Get(into)
	if err != nil {
		return false, err
	}
	return src.History.Merge(dst.History), nil
}

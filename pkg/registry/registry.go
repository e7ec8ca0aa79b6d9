package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/rewind/pkg/domain"
)

// Registry maps mutation kinds to handlers.
//
// Lookups check the local map first and fall back to the parent. Writes
// always land in the local map, so a parent is never modified through a
// child.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]domain.Handler
	parent   *Registry
}

// New creates an empty registry without a parent.
func New() *Registry {
	return &Registry{
		handlers: make(map[string]domain.Handler),
	}
}

// Derive creates an empty registry that falls back to r.
func (r *Registry) Derive() *Registry {
	child := New()
	child.parent = r
	return child
}

// Parent returns the fallback registry, or nil.
func (r *Registry) Parent() *Registry {
	return r.parent
}

// Lookup resolves kind locally, then through the parent chain.
func (r *Registry) Lookup(kind string) (domain.Handler, bool) {
	r.mu.RLock()
	h, ok := r.handlers[kind]
	r.mu.RUnlock()

	if ok {
		return h, true
	}
	if r.parent != nil {
		return r.parent.Lookup(kind)
	}
	return domain.Handler{}, false
}

// Add registers h under kind, replacing any local entry.
// A handler without Capture, Undo or Redo is rejected and the registry is left unchanged.
func (r *Registry) Add(kind string, h domain.Handler) error {
	if kind == "" {
		return domain.ErrEmptyKind
	}
	if err := h.Validate(kind); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = h
	return nil
}

// Modify merges the non-nil fields of partial into the handler kind resolves
// to and stores the result locally.
func (r *Registry) Modify(kind string, partial domain.Handler) error {
	resolved, ok := r.Lookup(kind)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = resolved.Merge(partial)
	return nil
}

// Remove deletes the local entry for kind. Inherited entries are unaffected.
func (r *Registry) Remove(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, kind)
}

// AddAll applies Add to every entry and joins the errors.
func (r *Registry) AddAll(handlers map[string]domain.Handler) error {
	var errs []error
	for _, kind := range sortedKeys(handlers) {
		if err := r.Add(kind, handlers[kind]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ModifyAll applies Modify to every entry and joins the errors.
func (r *Registry) ModifyAll(partials map[string]domain.Handler) error {
	var errs []error
	for _, kind := range sortedKeys(partials) {
		if err := r.Modify(kind, partials[kind]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RemoveAll applies Remove to every kind.
func (r *Registry) RemoveAll(kinds ...string) {
	for _, kind := range kinds {
		r.Remove(kind)
	}
}

// HasLocal reports whether kind is overridden in r itself.
func (r *Registry) HasLocal(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[kind]
	return ok
}

// Kinds lists every kind that resolves through r, sorted.
func (r *Registry) Kinds() []string {
	set := make(map[string]struct{})
	for reg := r; reg != nil; reg = reg.parent {
		reg.mu.RLock()
		for k := range reg.handlers {
			set[k] = struct{}{}
		}
		reg.mu.RUnlock()
	}

	kinds := make([]string, 0, len(set))
	for k := range set {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func sortedKeys(m map[string]domain.Handler) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

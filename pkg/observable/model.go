package observable

import (
	"github.com/aretw0/rewind/pkg/domain"
)

// Option configures a Model or Collection.
type Option func(*identity)

type identity struct {
	key string
}

// WithKey gives the object an explicit identity key.
func WithKey(key string) Option {
	return func(i *identity) {
		i.key = key
	}
}

// Model is an observable attribute map. Not safe for concurrent use.
type Model struct {
	Emitter
	identity

	attrs    map[string]any
	previous map[string]any
	changed  map[string]any
}

// NewModel creates a model holding a copy of attrs.
func NewModel(attrs map[string]any, opts ...Option) *Model {
	m := &Model{attrs: make(map[string]any)}
	for k, v := range attrs {
		if v != nil {
			m.attrs[k] = v
		}
	}
	for _, opt := range opts {
		opt(&m.identity)
	}
	return m
}

// Key returns the identity key given with WithKey, or "".
func (m *Model) Key() string {
	return m.key
}

// Get returns the value of an attribute, or nil.
func (m *Model) Get(key string) any {
	return m.attrs[key]
}

// Has reports whether the attribute is set.
func (m *Model) Has(key string) bool {
	_, ok := m.attrs[key]
	return ok
}

// Attributes returns a copy of every attribute.
func (m *Model) Attributes() map[string]any {
	out := make(map[string]any, len(m.attrs))
	for k, v := range m.attrs {
		out[k] = v
	}
	return out
}

// Set applies attrs and emits ("change", m, opts) when anything changed.
// A nil value removes the attribute.
func (m *Model) Set(attrs map[string]any, opts domain.Options) {
	changed, _ := domain.DiffAttributes(m.attrs, attrs)
	if changed == nil {
		return
	}

	m.previous = m.Attributes()
	for k, v := range changed {
		if v == nil {
			delete(m.attrs, k)
		} else {
			m.attrs[k] = v
		}
	}
	m.changed = changed

	m.Emit(domain.KindChange, m, opts)
}

// Unset removes an attribute.
func (m *Model) Unset(key string, opts domain.Options) {
	m.Set(map[string]any{key: nil}, opts)
}

// ChangedAttributes returns the attributes changed by the last Set.
// Removed attributes map to nil.
func (m *Model) ChangedAttributes() map[string]any {
	return domain.CopyAttributes(m.changed)
}

// PreviousAttributes returns every attribute as it was before the last Set.
func (m *Model) PreviousAttributes() map[string]any {
	return domain.CopyAttributes(m.previous)
}

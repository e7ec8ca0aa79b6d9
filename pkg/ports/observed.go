package ports

import (
	"github.com/aretw0/rewind/pkg/domain"
)

// Listener receives every notification an observed object emits.
// kind names the mutation ("add", "change", ...) and args carry its payload
// in the order the matching handler expects.
type Listener interface {
	Notify(kind string, args ...any)
}

// Notifier is the contract every observed object must fulfil: one catch-all
// subscription per listener, removable later with the same value.
type Notifier interface {
	On(l Listener)
	Off(l Listener)
}

// Identifiable objects supply their own identity key.
// Objects that do not implement it are identified by interface equality.
type Identifiable interface {
	Key() string
}

// Collection is the set of mutation primitives used by the add, remove and
// reset handlers.
type Collection interface {
	// Add inserts item, at opts.At when set, otherwise at the end.
	Add(item any, opts domain.Options)
	Remove(item any, opts domain.Options)
	// Reset replaces the full membership.
	Reset(items []any, opts domain.Options)
	Items() []any
}

// Model is the set of mutation primitives used by the change handler.
type Model interface {
	// Set applies attrs. A nil value removes the key.
	Set(attrs map[string]any, opts domain.Options)
	Unset(key string, opts domain.Options)
	// ChangedAttributes returns the keys changed by the last Set or Unset.
	ChangedAttributes() map[string]any
	// PreviousAttributes returns the attributes as they were before the last change.
	PreviousAttributes() map[string]any
}

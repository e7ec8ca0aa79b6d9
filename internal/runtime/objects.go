package runtime

import (
	"reflect"

	"github.com/aretw0/rewind/pkg/ports"
)

type keyed string

// ObjectRegistry is the ordered set of observed objects.
//
// Objects implementing ports.Identifiable with a non-empty key are identified
// by that key; everything else by interface equality. Non-comparable objects
// cannot be registered.
type ObjectRegistry struct {
	order   []ports.Notifier
	members map[any]ports.Notifier
}

// NewObjectRegistry creates an empty registry.
func NewObjectRegistry() *ObjectRegistry {
	return &ObjectRegistry{members: make(map[any]ports.Notifier)}
}

func identityOf(obj ports.Notifier) (any, bool) {
	if obj == nil {
		return nil, false
	}
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Pointer && reflect.ValueOf(obj).IsNil() {
		return nil, false
	}
	if id, ok := obj.(ports.Identifiable); ok && id.Key() != "" {
		return keyed(id.Key()), true
	}
	if !t.Comparable() {
		return nil, false
	}
	return obj, true
}

// IsRegistered reports whether obj, or an object with the same identity, is registered.
func (r *ObjectRegistry) IsRegistered(obj ports.Notifier) bool {
	id, ok := identityOf(obj)
	if !ok {
		return false
	}
	_, exists := r.members[id]
	return exists
}

// Register adds obj. It returns false when obj is already present or cannot
// be identified.
func (r *ObjectRegistry) Register(obj ports.Notifier) bool {
	id, ok := identityOf(obj)
	if !ok {
		return false
	}
	if _, exists := r.members[id]; exists {
		return false
	}
	r.members[id] = obj
	r.order = append(r.order, obj)
	return true
}

// Unregister removes the object sharing obj's identity and returns the
// instance that was registered.
func (r *ObjectRegistry) Unregister(obj ports.Notifier) (ports.Notifier, bool) {
	id, ok := identityOf(obj)
	if !ok {
		return nil, false
	}
	stored, exists := r.members[id]
	if !exists {
		return nil, false
	}
	delete(r.members, id)
	for i, o := range r.order {
		if oid, _ := identityOf(o); oid == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return stored, true
}

// All returns the registered objects in registration order.
func (r *ObjectRegistry) All() []ports.Notifier {
	return append([]ports.Notifier(nil), r.order...)
}

// Len returns the number of registered objects.
func (r *ObjectRegistry) Len() int {
	return len(r.order)
}

package observable

import (
	"reflect"

	"github.com/aretw0/rewind/pkg/ports"
)

// Emitter keeps a list of listeners and notifies them synchronously, in
// subscription order. The zero value is ready to use.
type Emitter struct {
	listeners []ports.Listener
}

// On subscribes l. Subscribing the same listener twice has no effect.
func (e *Emitter) On(l ports.Listener) {
	for _, existing := range e.listeners {
		if same(existing, l) {
			return
		}
	}
	e.listeners = append(e.listeners, l)
}

// Off unsubscribes l.
func (e *Emitter) Off(l ports.Listener) {
	for i, existing := range e.listeners {
		if same(existing, l) {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns how many listeners are subscribed.
func (e *Emitter) Listeners() int {
	return len(e.listeners)
}

// Emit notifies every listener of kind.
func (e *Emitter) Emit(kind string, args ...any) {
	// Copy so listeners may subscribe or unsubscribe while being notified.
	listeners := make([]ports.Listener, len(e.listeners))
	copy(listeners, e.listeners)

	for _, l := range listeners {
		l.Notify(kind, args...)
	}
}

// same compares by identity without panicking on non-comparable values.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func isComparable(v any) bool {
	return v != nil && reflect.TypeOf(v).Comparable()
}

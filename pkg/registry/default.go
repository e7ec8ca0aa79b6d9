package registry

import (
	"sync"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, created on first use with the
// built-in handlers.
//
// Changes made through it are seen by every registry derived from it that
// has not overridden the same kind.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewWithBuiltins()
	})
	return defaultRegistry
}

// NewWithBuiltins creates a standalone registry holding the built-in handlers.
func NewWithBuiltins() *Registry {
	r := New()
	for kind, h := range Builtins() {
		r.handlers[kind] = h
	}
	return r
}

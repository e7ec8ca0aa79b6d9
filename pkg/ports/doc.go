/*
Package ports defines the interfaces rewind expects from the outside world.

The observed object contract (Listener, Notifier, Model, Collection) is what a
host implements to have its objects tracked. Journal is a driven port for
recording history events, with in-memory, file and Redis adapters under
pkg/adapters.

# Key Interfaces

  - Notifier: An object that accepts one catch-all Listener and emits (kind, args...) notifications.
  - Collection / Model: Mutation primitives the built-in handlers call during replay.
  - HandlerLookup: Resolves a kind to its handler; implemented by pkg/registry.
  - Journal: Capped append-only feed of history events.
*/
package ports

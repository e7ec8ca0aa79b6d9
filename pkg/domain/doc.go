/*
Package domain contains the core types of the rewind history engine.

It defines what a captured mutation looks like, how a mutation kind is
captured and inverted, and the events emitted while history changes. The
package is kept pure and free of I/O so that every other layer can depend on
it.

# Key Entities

  - Action: One captured, invertible mutation, stamped with its cycle index.
  - Handler: Capture, Undo and Redo functions for one mutation kind, plus an optional Condition.
  - Options: Positional hints and snapshots that travel with each mutation.
  - LifecycleHooks: Optional callbacks fired on capture, eviction, replay, clear and merge.
  - Entry: The serializable journal form of a history event.
*/
package domain

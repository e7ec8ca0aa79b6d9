/*
Package rewind is an undo/redo engine for observable objects.

It listens to the change notifications emitted by models, collections or any
other notifier, records each mutation as an invertible Action, and replays
those actions backward or forward on demand.

# Concept

Mutations that happen within one unit of work (one user action, one request,
one task of a loop) share a cycle index and are undone and redone together.
Where a unit of work ends is decided by the host through a cycle.Scheduler;
without one every mutation is its own cycle.

How a mutation is captured and inverted is decided by undo types: handlers
registered under the kind of notification they handle. The built-in kinds are
"add", "remove", "change" and "reset". Each manager can add or override types
without affecting the process-wide defaults, and two managers can share one
history through Merge.

# Key Features

  - Atomic cycles: Everything captured in one unit of work is one undo step.
  - Bounded history: Oldest actions are evicted past a maximum length.
  - Divergent timelines: A new mutation after an undo discards the redo tail.
  - Re-entrancy safe: Mutations caused by a replay are never recorded.
  - Observable: Lifecycle hooks feed logging, Prometheus, OpenTelemetry and journals.

# Usage

	doc := observable.NewModel(map[string]any{"title": "Draft"})
	items := observable.NewCollection(nil)

	loop := cycle.NewLoop(0)
	m := rewind.New(
		rewind.WithScheduler(loop),
		rewind.WithTracking(true),
		rewind.WithObjects(doc, items),
	)

	loop.Do(func() {
		doc.Set(map[string]any{"title": "Final"}, domain.Options{})
		items.Add("chapter-1", domain.Options{})
	})

	m.Undo() // both mutations are reverted
	m.Redo() // and reapplied

# Custom Undo Types

Any notifier can be tracked as long as a handler exists for the kinds it
emits:

	err := m.AddUndoType("rename", domain.Handler{
		Capture: func(args ...any) (domain.Payload, bool) {
			f := args[0].(*File)
			return domain.Payload{Subject: f, Before: args[1], After: f.Name}, true
		},
		Undo: func(a *domain.Action) { a.Subject.(*File).Rename(a.Before.(string)) },
		Redo: func(a *domain.Action) { a.Subject.(*File).Rename(a.After.(string)) },
	})

Handlers missing Capture, Undo or Redo are rejected with
domain.ErrMalformedHandler.
*/
package rewind

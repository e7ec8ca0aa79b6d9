package domain

import (
	"time"
)

// Action is one captured, invertible mutation.
//
// Actions are immutable once captured. The stack only changes where an
// action sits relative to its pointer, never the action itself.
type Action struct {
	ID         string
	Kind       string
	Subject    any
	Before     any
	After      any
	Options    Options
	CycleIndex int
	CapturedAt time.Time

	handler Handler
}

// NewAction builds an action from a capture payload.
// The handler is kept so that replay inverts the action with the logic that
// recorded it, even after the registry that produced it has changed.
func NewAction(id, kind string, cycleIndex int, h Handler, p Payload) *Action {
	return &Action{
		ID:         id,
		Kind:       kind,
		Subject:    p.Subject,
		Before:     p.Before,
		After:      p.After,
		Options:    p.Options.Clone(),
		CycleIndex: cycleIndex,
		CapturedAt: time.Now(),
		handler:    h,
	}
}

// Undo moves the subject back to its Before state.
// Actions whose handler has no Undo function are skipped.
func (a *Action) Undo() {
	if a.handler.Undo != nil {
		a.handler.Undo(a)
	}
}

// Redo moves the subject forward to its After state.
func (a *Action) Redo() {
	if a.handler.Redo != nil {
		a.handler.Redo(a)
	}
}

// Payload is what a handler's Capture produces from a raw notification.
// A payload without Subject is incomplete and never recorded.
type Payload struct {
	Subject any
	Before  any
	After   any
	Options Options
}

// Complete reports whether the payload can become an Action.
func (p Payload) Complete() bool {
	return p.Subject != nil
}

package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCapture EventType = "capture"
	EventEvict   EventType = "evict"
	EventUndo    EventType = "undo"
	EventRedo    EventType = "redo"
	EventClear   EventType = "clear"
	EventMerge   EventType = "merge"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Manager   string    `json:"manager"`
}

// ActionEvent reports a single action entering or leaving the stack.
type ActionEvent struct {
	EventBase
	Action  *Action
	Pointer int
	Length  int
}

// CycleEvent reports a replayed cycle.
type CycleEvent struct {
	EventBase
	CycleIndex int
	Actions    []*Action
	Pointer    int
	Length     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration is the time spent inverting the cycle.
func (e *CycleEvent) Duration() time.Duration {
	return e.FinishedAt.Sub(e.StartedAt)
}

// StackEvent reports a change to the stack as a whole (clear, merge).
type StackEvent struct {
	EventBase
	Pointer int
	Length  int
}

// LifecycleHooks defines callbacks for history observability.
// All hooks are optional and run synchronously after the operation completes.
type LifecycleHooks struct {
	OnCapture func(*ActionEvent)
	OnEvict   func(*ActionEvent)
	OnUndo    func(*CycleEvent)
	OnRedo    func(*CycleEvent)
	OnClear   func(*StackEvent)
	OnMerge   func(*StackEvent)
}

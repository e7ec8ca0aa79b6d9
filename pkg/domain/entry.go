package domain

import (
	"time"
)

// Entry is the serializable journal record of a history event.
// Subjects and payloads are not recorded; entries describe what
// happened to the history, not the objects themselves.
type Entry struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Manager    string    `json:"manager,omitempty"`
	Kinds      []string  `json:"kinds,omitempty"`
	CycleIndex int       `json:"cycle_index"`
	Pointer    int       `json:"pointer"`
	Length     int       `json:"length"`
	Actions    []string  `json:"actions,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMS float64   `json:"duration_ms,omitempty"`
}

// EntryFromAction builds an entry for capture and evict events.
func EntryFromAction(id string, e *ActionEvent) Entry {
	return Entry{
		ID:         id,
		Type:       e.Type,
		Manager:    e.Manager,
		Kinds:      []string{e.Action.Kind},
		CycleIndex: e.Action.CycleIndex,
		Pointer:    e.Pointer,
		Length:     e.Length,
		Actions:    []string{e.Action.ID},
		Timestamp:  e.Timestamp,
	}
}

// EntryFromCycle builds an entry for undo and redo events.
func EntryFromCycle(id string, e *CycleEvent) Entry {
	entry := Entry{
		ID:         id,
		Type:       e.Type,
		Manager:    e.Manager,
		CycleIndex: e.CycleIndex,
		Pointer:    e.Pointer,
		Length:     e.Length,
		Timestamp:  e.Timestamp,
		DurationMS: float64(e.Duration().Microseconds()) / 1000,
	}
	seen := make(map[string]bool)
	for _, a := range e.Actions {
		entry.Actions = append(entry.Actions, a.ID)
		if !seen[a.Kind] {
			seen[a.Kind] = true
			entry.Kinds = append(entry.Kinds, a.Kind)
		}
	}
	return entry
}

// EntryFromStack builds an entry for clear and merge events.
func EntryFromStack(id string, e *StackEvent) Entry {
	return Entry{
		ID:        id,
		Type:      e.Type,
		Manager:   e.Manager,
		Pointer:   e.Pointer,
		Length:    e.Length,
		Timestamp: e.Timestamp,
	}
}

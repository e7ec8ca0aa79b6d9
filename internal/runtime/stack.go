package runtime

import (
	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/aretw0/rewind/pkg/ports"
	"github.com/google/uuid"
)

// CaptureResult reports what a capture changed.
// Action is nil when nothing was recorded.
type CaptureResult struct {
	Action  *domain.Action
	Evicted []*domain.Action
}

// Stack is a bounded, pointer-addressed history of actions.
//
// pointer stays within [-1, len(entries)-1]: -1 means nothing to undo and
// len-1 means nothing to redo. Not safe for concurrent use.
type Stack struct {
	entries   []*domain.Action
	pointer   int
	tracking  bool
	replaying bool
	maxLength int
	indexer   *cycle.Indexer
}

// NewStack creates an empty stack. maxLength <= 0 means unbounded.
func NewStack(indexer *cycle.Indexer, maxLength int) *Stack {
	if indexer == nil {
		indexer = cycle.NewIndexer(nil)
	}
	return &Stack{
		pointer:   -1,
		maxLength: maxLength,
		indexer:   indexer,
	}
}

// Capture records a notification as an action.
//
// Nothing is recorded while not tracking, while replaying, when kind does not
// resolve, when the handler's condition vetoes it, or when the payload is
// incomplete. A new action discards the redo tail before being appended.
func (s *Stack) Capture(kind string, args []any, lookup ports.HandlerLookup) CaptureResult {
	if !s.tracking || s.replaying {
		return CaptureResult{}
	}
	h, ok := lookup.Lookup(kind)
	if !ok || !h.Allows(args...) {
		return CaptureResult{}
	}
	payload, ok := h.Capture(args...)
	if !ok || !payload.Complete() {
		return CaptureResult{}
	}

	action := domain.NewAction(uuid.NewString(), kind, s.indexer.Current(), h, payload)

	if s.pointer < len(s.entries)-1 {
		clear(s.entries[s.pointer+1:])
		s.entries = s.entries[:s.pointer+1]
	}
	s.entries = append(s.entries, action)
	s.pointer = len(s.entries) - 1

	return CaptureResult{Action: action, Evicted: s.trim()}
}

// trim evicts the oldest entries beyond maxLength, keeping the pointer on
// the same action.
//
// Only applied entries are evicted from the front. When that is not enough,
// the redo tail is discarded first: an undone action cannot outlive the
// action it was captured after.
func (s *Stack) trim() []*domain.Action {
	if s.maxLength <= 0 || len(s.entries) <= s.maxLength {
		return nil
	}

	var tail []*domain.Action
	if len(s.entries)-s.maxLength > s.pointer+1 {
		tail = append(tail, s.entries[s.pointer+1:]...)
		clear(s.entries[s.pointer+1:])
		s.entries = s.entries[:s.pointer+1]
	}

	excess := max(len(s.entries)-s.maxLength, 0)
	evicted := append([]*domain.Action(nil), s.entries[:excess]...)
	s.entries = append([]*domain.Action(nil), s.entries[excess:]...)
	s.pointer -= excess
	return append(evicted, tail...)
}

// UndoStep inverts the single action at the pointer.
func (s *Stack) UndoStep() *domain.Action {
	if s.replaying || s.pointer < 0 {
		return nil
	}
	action := s.entries[s.pointer]
	s.pointer--
	s.replay(action.Undo)
	return action
}

// RedoStep reapplies the single action after the pointer.
func (s *Stack) RedoStep() *domain.Action {
	if s.replaying || s.pointer >= len(s.entries)-1 {
		return nil
	}
	s.pointer++
	action := s.entries[s.pointer]
	s.replay(action.Redo)
	return action
}

// UndoCycle inverts every applied action sharing the cycle index of the one
// at the pointer, newest first, and returns them in insertion order.
func (s *Stack) UndoCycle() []*domain.Action {
	if s.replaying || s.pointer < 0 {
		return nil
	}

	anchor := s.entries[s.pointer]
	start := s.pointer
	for start > 0 && s.entries[start-1].CycleIndex == anchor.CycleIndex {
		start--
	}
	group := append([]*domain.Action(nil), s.entries[start:s.pointer+1]...)
	s.pointer = start - 1

	s.replay(func() {
		for i := len(group) - 1; i >= 0; i-- {
			group[i].Undo()
		}
	})
	return group
}

// RedoCycle reapplies every undone action sharing the cycle index of the one
// after the pointer, oldest first.
func (s *Stack) RedoCycle() []*domain.Action {
	if s.replaying || s.pointer >= len(s.entries)-1 {
		return nil
	}

	anchor := s.entries[s.pointer+1]
	end := s.pointer + 1
	for end < len(s.entries)-1 && s.entries[end+1].CycleIndex == anchor.CycleIndex {
		end++
	}
	group := append([]*domain.Action(nil), s.entries[s.pointer+1:end+1]...)
	s.pointer = end

	s.replay(func() {
		for _, action := range group {
			action.Redo()
		}
	})
	return group
}

// replay runs fn with capture suppressed. The flag is released even if a
// handler panics.
func (s *Stack) replay(fn func()) {
	s.replaying = true
	defer func() { s.replaying = false }()
	fn()
}

// Clear drops every entry. Tracking is left as it is.
func (s *Stack) Clear() {
	s.entries = nil
	s.pointer = -1
}

// SetMaxLength changes the bound and evicts what no longer fits.
func (s *Stack) SetMaxLength(n int) []*domain.Action {
	s.maxLength = n
	return s.trim()
}

// SetTracking turns capture on or off.
func (s *Stack) SetTracking(on bool) {
	s.tracking = on
}

func (s *Stack) Tracking() bool  { return s.tracking }
func (s *Stack) Replaying() bool { return s.replaying }
func (s *Stack) MaxLength() int  { return s.maxLength }
func (s *Stack) Len() int        { return len(s.entries) }
func (s *Stack) Pointer() int    { return s.pointer }

// CanUndo reports whether an applied action exists.
func (s *Stack) CanUndo() bool {
	return len(s.entries) > 0 && s.pointer > -1
}

// CanRedo reports whether an undone action exists.
func (s *Stack) CanRedo() bool {
	return len(s.entries) > 0 && s.pointer < len(s.entries)-1
}

// Actions returns a copy of the entries, oldest first.
func (s *Stack) Actions() []*domain.Action {
	return append([]*domain.Action(nil), s.entries...)
}

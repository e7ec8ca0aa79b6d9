package session

import (
	"time"

	"github.com/aretw0/rewind"
	"github.com/aretw0/rewind/pkg/cycle"
	"github.com/aretw0/rewind/pkg/observable"
)

// Document is an editable attribute set plus an ordered item list, both
// registered with one history.
type Document struct {
	ID      string
	History *rewind.Manager
	Attrs   *observable.Model
	Items   *observable.Collection

	loop *cycle.Loop
}

// NewDocument creates a document recording onto a tracking manager named id.
// opts are applied after the defaults and may override them.
func NewDocument(id string, loop *cycle.Loop, opts ...rewind.Option) *Document {
	d := &Document{
		ID:    id,
		Attrs: observable.NewModel(nil, observable.WithKey(id+"/attributes")),
		Items: observable.NewCollection(nil, observable.WithKey(id+"/items")),
		loop:  loop,
	}

	all := []rewind.Option{
		rewind.WithName(id),
		rewind.WithScheduler(loop),
		rewind.WithTracking(true),
	}
	all = append(all, opts...)
	all = append(all, rewind.WithObjects(d.Attrs, d.Items))
	d.History = rewind.New(all...)
	return d
}

// Do runs fn as one unit of work.
func (d *Document) Do(fn func()) {
	d.loop.Do(fn)
}

// Snapshot is the serializable content of a document.
type Snapshot struct {
	ID         string         `json:"id"`
	Attributes map[string]any `json:"attributes"`
	Items      []any          `json:"items"`
}

// Snapshot copies the current content.
func (d *Document) Snapshot() Snapshot {
	return Snapshot{
		ID:         d.ID,
		Attributes: d.Attrs.Attributes(),
		Items:      d.Items.Items(),
	}
}

// ActionView describes one history entry.
type ActionView struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Cycle      int       `json:"cycle"`
	CapturedAt time.Time `json:"captured_at"`
	Applied    bool      `json:"applied"`
}

// History is the serializable state of a document's history.
type History struct {
	Name      string       `json:"name"`
	Tracking  bool         `json:"tracking"`
	Pointer   int          `json:"pointer"`
	Length    int          `json:"length"`
	MaxLength int          `json:"max_length"`
	Undoable  bool         `json:"undoable"`
	Redoable  bool         `json:"redoable"`
	Actions   []ActionView `json:"actions"`
}

// Inspect reports the history state.
func (d *Document) Inspect() History {
	m := d.History
	h := History{
		Name:      m.Name(),
		Tracking:  m.IsTracking(),
		Pointer:   m.Pointer(),
		Length:    m.Len(),
		MaxLength: m.MaxLength(),
		Undoable:  m.IsUndoable(),
		Redoable:  m.IsRedoable(),
		Actions:   []ActionView{},
	}
	for i, a := range m.Actions() {
		h.Actions = append(h.Actions, ActionView{
			ID:         a.ID,
			Kind:       a.Kind,
			Cycle:      a.CycleIndex,
			CapturedAt: a.CapturedAt,
			Applied:    i <= h.Pointer,
		})
	}
	return h
}

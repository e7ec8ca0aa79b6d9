package observable

import (
	"github.com/aretw0/rewind/pkg/domain"
)

// Collection is an observable ordered set. Items are matched by ==, so they
// must be comparable; non-comparable items are ignored.
type Collection struct {
	Emitter
	identity

	items []any
}

// NewCollection creates a collection holding items.
func NewCollection(items []any, opts ...Option) *Collection {
	c := &Collection{}
	for _, item := range items {
		if isComparable(item) && c.IndexOf(item) == -1 {
			c.items = append(c.items, item)
		}
	}
	for _, opt := range opts {
		opt(&c.identity)
	}
	return c
}

// Key returns the identity key given with WithKey, or "".
func (c *Collection) Key() string {
	return c.key
}

// Items returns a copy of the membership.
func (c *Collection) Items() []any {
	return append([]any{}, c.items...)
}

// Len returns the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// At returns the item at position i.
func (c *Collection) At(i int) any {
	return c.items[i]
}

// IndexOf returns the position of item, or -1.
func (c *Collection) IndexOf(item any) int {
	for i, existing := range c.items {
		if same(existing, item) {
			return i
		}
	}
	return -1
}

// Contains reports whether item is a member.
func (c *Collection) Contains(item any) bool {
	return c.IndexOf(item) != -1
}

// Add inserts item at opts.At, clamped to the collection bounds, or at the
// end. It emits ("add", item, c, opts) with Index set to the final position.
// Items already present are ignored.
func (c *Collection) Add(item any, opts domain.Options) {
	if !isComparable(item) || c.Contains(item) {
		return
	}

	pos := len(c.items)
	if opts.At != nil {
		pos = max(0, min(*opts.At, len(c.items)))
	}
	c.items = append(c.items, nil)
	copy(c.items[pos+1:], c.items[pos:])
	c.items[pos] = item

	out := opts.Clone()
	out.Index = domain.Position(pos)
	c.Emit(domain.KindAdd, item, c, out)
}

// Remove deletes item and emits ("remove", item, c, opts) with Index set to
// the position it had.
func (c *Collection) Remove(item any, opts domain.Options) {
	pos := c.IndexOf(item)
	if pos == -1 {
		return
	}
	c.items = append(c.items[:pos], c.items[pos+1:]...)

	out := opts.Clone()
	out.Index = domain.Position(pos)
	c.Emit(domain.KindRemove, item, c, out)
}

// Reset replaces the membership and emits ("reset", c, opts) with Previous
// holding the old membership.
func (c *Collection) Reset(items []any, opts domain.Options) {
	previous := c.items
	c.items = nil
	for _, item := range items {
		if isComparable(item) && c.IndexOf(item) == -1 {
			c.items = append(c.items, item)
		}
	}

	out := opts.Clone()
	out.Previous = previous
	c.Emit(domain.KindReset, c, out)
}

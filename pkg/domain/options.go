package domain

// Options travels with every mutation primitive and every notification.
//
// Index is what an object reports when it emits add/remove; At is what a
// caller passes to request a position. Replay remaps one to the other.
type Options struct {
	At       *int
	Index    *int
	Previous []any
}

// Position returns a pointer to i, for use in At and Index.
func Position(i int) *int {
	return &i
}

// Clone returns a deep copy so that stored options cannot be altered by the caller.
func (o Options) Clone() Options {
	out := Options{}
	if o.At != nil {
		out.At = Position(*o.At)
	}
	if o.Index != nil {
		out.Index = Position(*o.Index)
	}
	if o.Previous != nil {
		out.Previous = append([]any(nil), o.Previous...)
	}
	return out
}

// AtIndex returns a copy whose At is taken from Index, the positional remap
// used when an item has to go back where it was.
func (o Options) AtIndex() Options {
	out := o.Clone()
	if out.Index != nil {
		out.At = Position(*out.Index)
	}
	return out
}

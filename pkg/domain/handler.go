package domain

// CaptureFunc turns the arguments of a raw notification into a payload.
// Returning false means the mutation is not recorded.
type CaptureFunc func(args ...any) (Payload, bool)

// InvertFunc applies an action to its subject in one direction.
type InvertFunc func(a *Action)

// ConditionFunc vetoes a capture when it returns false.
type ConditionFunc func(args ...any) bool

// Handler knows how to capture and invert one kind of mutation.
type Handler struct {
	Capture   CaptureFunc
	Undo      InvertFunc
	Redo      InvertFunc
	Condition ConditionFunc
}

// Validate reports which required functions are missing.
func (h Handler) Validate(kind string) error {
	var missing []string
	if h.Capture == nil {
		missing = append(missing, "capture")
	}
	if h.Undo == nil {
		missing = append(missing, "undo")
	}
	if h.Redo == nil {
		missing = append(missing, "redo")
	}
	if len(missing) > 0 {
		return &HandlerError{Kind: kind, Missing: missing}
	}
	return nil
}

// Merge returns a copy of h with every non-nil field of partial applied.
// h itself is left untouched.
func (h Handler) Merge(partial Handler) Handler {
	out := h
	if partial.Capture != nil {
		out.Capture = partial.Capture
	}
	if partial.Undo != nil {
		out.Undo = partial.Undo
	}
	if partial.Redo != nil {
		out.Redo = partial.Redo
	}
	if partial.Condition != nil {
		out.Condition = partial.Condition
	}
	return out
}

// Allows reports whether the condition, if any, accepts the notification.
func (h Handler) Allows(args ...any) bool {
	return h.Condition == nil || h.Condition(args...)
}

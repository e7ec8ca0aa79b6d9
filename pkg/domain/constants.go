package domain

// Built-in undo type names.
const (
	KindAdd    = "add"
	KindRemove = "remove"
	KindChange = "change"
	KindReset  = "reset"
)

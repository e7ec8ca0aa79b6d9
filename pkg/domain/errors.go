package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedHandler is returned when a handler lacks capture, undo or redo.
var ErrMalformedHandler = errors.New("malformed undo type handler")

// ErrUnknownKind is returned when modifying a kind that resolves nowhere.
var ErrUnknownKind = errors.New("unknown undo type")

// ErrEmptyKind is returned when registering a handler under an empty name.
var ErrEmptyKind = errors.New("undo type name is empty")

// HandlerError describes a rejected handler registration.
type HandlerError struct {
	Kind    string
	Missing []string
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("undo type %q: missing %s", e.Kind, strings.Join(e.Missing, ", "))
}

// Is lets errors.Is match ErrMalformedHandler.
func (e *HandlerError) Is(target error) bool {
	return target == ErrMalformedHandler
}

// ErrDocumentNotFound is returned when a document ID is not open.
var ErrDocumentNotFound = errors.New("document not found")

// ErrInvalidCommand is returned for document commands that cannot be parsed
// or applied.
var ErrInvalidCommand = errors.New("invalid command")

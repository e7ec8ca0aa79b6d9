/*
Package observable provides reference implementations of the objects rewind
observes.

Model is an attribute map that emits "change". Collection is an ordered set of
comparable items that emits "add", "remove" and "reset". Both follow the
argument conventions of the built-in handlers in pkg/registry. Emitter is the
listener bookkeeping they share, and can be embedded by host types that emit
their own kinds.
*/
package observable

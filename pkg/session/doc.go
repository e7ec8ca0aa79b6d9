/*
Package session hosts documents whose edits are recorded by a rewind.Manager.

A Document pairs an attribute model with an item list and exposes a small
line-oriented command language (set, add, undo, ...). Every command line is
one unit of work on the shared cycle.Loop, so the commands on a line form a
single undo cycle.

The session Manager keeps documents by ID for hosts that serve several at
once, such as the HTTP inspector.
*/
package session

// Package handles provides reference counted and exclusive ownership
// handles for heap objects whose teardown must happen at a deterministic
// point, not whenever the garbage collector gets around to it.
//
// A Shared[T] keeps its object alive while at least one handle exists and
// runs the object's finalizer exactly once, when the last handle is
// released. Handles must not be copied by plain assignment; use Clone to
// share ownership, Move to transfer it, and Release when done. Aliased
// handles observe a sub-object while keeping the enclosing object alive.
//
// An Exclusive[T] is the move-only counterpart with a pluggable deleter.
package handles

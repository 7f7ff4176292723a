package handles

import (
	"unsafe"

	"github.com/zjkmxy/handles/types/optional"
)

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Shared is a reference counted owning handle. The managed object stays
// alive while at least one handle in the ownership group exists; the last
// Release tears it down through the group's control block.
//
// The zero value is an empty handle. Handles must not be duplicated by
// plain assignment (go vet flags it): sharing goes through Clone, transfer
// through Move.
//
// ptr may differ from the object the control block owns: an aliased handle
// points at a sub-object while the block keeps the enclosing object alive.
type Shared[T any] struct {
	cb  block
	ptr *T
	_   noCopy
}

// New adopts a separately allocated object. The handle is the sole owner.
// New[T](nil) is legal and yields a counted handle managing nothing, for
// callers that want a block to alias against before the object exists.
func New[T any](ptr *T) Shared[T] {
	return Shared[T]{cb: newPointerBlock(ptr, nil), ptr: ptr}
}

// NewWithFinalizer adopts ptr and runs fin on it exactly once, when the
// last strong reference in the group is released.
func NewWithFinalizer[T any](ptr *T, fin func(*T)) Shared[T] {
	return Shared[T]{cb: newPointerBlock(ptr, fin), ptr: ptr}
}

// Make allocates the object and its control block together (one allocation)
// and copies val into the inline storage. Preferred over New when the
// caller controls construction.
func Make[T any](val T) Shared[T] {
	b := newCombinedBlock[T](nil)
	b.val = val
	return Shared[T]{cb: b, ptr: &b.val}
}

// MakeWith is Make for objects built in place: ctor receives a pointer to
// the zeroed inline storage, fin (optional) runs on teardown. Either may be
// nil.
func MakeWith[T any](ctor func(*T), fin func(*T)) Shared[T] {
	b := newCombinedBlock[T](fin)
	if ctor != nil {
		ctor(&b.val)
	}
	return Shared[T]{cb: b, ptr: &b.val}
}

// Alias returns a handle that shares ownership with of but points at ptr,
// typically a field of the object of manages. The enclosing object stays
// alive as long as the alias does. Panics if of is empty.
func Alias[A, T any](of *Shared[T], ptr *A) Shared[A] {
	if of.cb == nil {
		panic("handles: alias of an empty handle")
	}
	of.cb.retain()
	return Shared[A]{cb: of.cb, ptr: ptr}
}

// Clone returns a new handle sharing ownership with s. Cloning an empty
// handle yields an empty handle.
func (s *Shared[T]) Clone() Shared[T] {
	if s.cb != nil {
		s.cb.retain()
	}
	return Shared[T]{cb: s.cb, ptr: s.ptr}
}

// Move transfers ownership to the returned handle and empties s. s remains
// safe to Release.
func (s *Shared[T]) Move() Shared[T] {
	cb, ptr := s.cb, s.ptr
	s.cb = nil
	s.ptr = nil
	return Shared[T]{cb: cb, ptr: ptr}
}

// Release drops this handle's strong reference and empties the handle.
// The last release in the group tears the object down. Releasing an empty
// handle is a no-op, so moved-from handles are always safe to release.
func (s *Shared[T]) Release() {
	if s.cb != nil {
		s.cb.release()
	}
	s.cb = nil
	s.ptr = nil
}

// Reset is Release under the name the pointer vocabulary expects.
func (s *Shared[T]) Reset() {
	s.Release()
}

// ResetTo releases the current reference and adopts ptr under a fresh
// control block.
func (s *Shared[T]) ResetTo(ptr *T) {
	s.Release()
	s.cb = newPointerBlock(ptr, nil)
	s.ptr = ptr
}

// Assign makes s share ownership with o, releasing whatever s held before.
// Assigning a handle to one already managing the same object is a no-op.
func (s *Shared[T]) Assign(o *Shared[T]) {
	if s.ptr == o.ptr && s.cb == o.cb {
		return
	}
	// Retain the source first: when both handles share a block, releasing
	// s must not be the decrement that tears the group down.
	if o.cb != nil {
		o.cb.retain()
	}
	cb, ptr := o.cb, o.ptr
	s.Release()
	s.cb, s.ptr = cb, ptr
}

// AssignMove transfers o's reference into s, releasing whatever s held
// before, and empties o. A self-transfer leaves both handles untouched.
func (s *Shared[T]) AssignMove(o *Shared[T]) {
	if s == o || (s.ptr == o.ptr && s.cb == o.cb) {
		return
	}
	cb, ptr := o.cb, o.ptr
	o.cb = nil
	o.ptr = nil
	s.Release()
	s.cb, s.ptr = cb, ptr
}

// Swap exchanges the contents of two handles. No counts change.
func (s *Shared[T]) Swap(o *Shared[T]) {
	s.cb, o.cb = o.cb, s.cb
	s.ptr, o.ptr = o.ptr, s.ptr
}

// Get returns the managed pointer, nil for an empty handle.
func (s *Shared[T]) Get() *T {
	return s.ptr
}

// Deref returns the managed value. Panics on an empty handle; use TryDeref
// when emptiness is an expected state.
func (s *Shared[T]) Deref() T {
	if s.ptr == nil {
		panic("handles: dereference of an empty handle")
	}
	return *s.ptr
}

// TryDeref returns the managed value, or None for an empty handle.
func (s *Shared[T]) TryDeref() optional.Optional[T] {
	return optional.FromPtr(s.ptr)
}

// UseCount returns the number of strong references in the ownership group,
// 0 for a handle with no control block.
func (s *Shared[T]) UseCount() int {
	if s.cb == nil {
		return 0
	}
	return s.cb.useCount()
}

// Valid reports whether the handle manages an object.
func (s *Shared[T]) Valid() bool {
	return s.ptr != nil
}

// Equal reports whether two handles manage the same object. Identity of
// the managed pointers is what counts, not the control block: two aliases
// of one group pointing at different sub-objects are not equal.
func (s *Shared[T]) Equal(o *Shared[T]) bool {
	return s.ptr == o.ptr
}

// Same is Equal across handle types: it reports whether a and b manage the
// same address, whatever their declared element types.
func Same[A, B any](a *Shared[A], b *Shared[B]) bool {
	return unsafe.Pointer(a.ptr) == unsafe.Pointer(b.ptr)
}

package handles

// Deleter releases the object owned by an Exclusive handle.
type Deleter[T any] func(*T)

// Exclusive is a move-only single-owner handle. The deleter, when set, runs
// on Reset, ResetTo and move-assignment over a held object; with a nil
// deleter the garbage collector is the deleter. The zero value is empty.
type Exclusive[T any] struct {
	ptr *T
	del Deleter[T]
	_   noCopy
}

// NewExclusive takes sole ownership of ptr with no deleter.
func NewExclusive[T any](ptr *T) Exclusive[T] {
	return Exclusive[T]{ptr: ptr}
}

// NewExclusiveWithDeleter takes sole ownership of ptr; del runs when the
// object is disposed of.
func NewExclusiveWithDeleter[T any](ptr *T, del Deleter[T]) Exclusive[T] {
	return Exclusive[T]{ptr: ptr, del: del}
}

// Move transfers ownership to the returned handle and empties e. The
// deleter moves with the object.
func (e *Exclusive[T]) Move() Exclusive[T] {
	ptr := e.ptr
	e.ptr = nil
	return Exclusive[T]{ptr: ptr, del: e.del}
}

// AssignMove transfers o's object into e, disposing of whatever e held
// before, and empties o. A self-transfer is a no-op.
func (e *Exclusive[T]) AssignMove(o *Exclusive[T]) {
	if e == o || e.ptr == o.ptr {
		return
	}
	e.dispose(e.ptr)
	e.ptr, e.del = o.ptr, o.del
	o.ptr = nil
}

// Release relinquishes ownership without running the deleter and returns
// the pointer; disposing of the object becomes the caller's job.
func (e *Exclusive[T]) Release() *T {
	p := e.ptr
	e.ptr = nil
	return p
}

// Reset disposes of the owned object and empties the handle.
func (e *Exclusive[T]) Reset() {
	p := e.ptr
	e.ptr = nil
	e.dispose(p)
}

// ResetTo disposes of the owned object and takes ownership of ptr instead.
// Resetting to the already-owned pointer is a no-op.
func (e *Exclusive[T]) ResetTo(ptr *T) {
	if e.ptr == ptr {
		return
	}
	p := e.ptr
	e.ptr = ptr
	e.dispose(p)
}

// Swap exchanges the owned objects and deleters of two handles.
func (e *Exclusive[T]) Swap(o *Exclusive[T]) {
	e.ptr, o.ptr = o.ptr, e.ptr
	e.del, o.del = o.del, e.del
}

// Get returns the owned pointer, nil for an empty handle.
func (e *Exclusive[T]) Get() *T {
	return e.ptr
}

// Deref returns the owned value. Panics on an empty handle.
func (e *Exclusive[T]) Deref() T {
	if e.ptr == nil {
		panic("handles: dereference of an empty handle")
	}
	return *e.ptr
}

// Valid reports whether the handle owns an object.
func (e *Exclusive[T]) Valid() bool {
	return e.ptr != nil
}

// Deleter returns the handle's deleter, nil when none was supplied.
func (e *Exclusive[T]) Deleter() Deleter[T] {
	return e.del
}

func (e *Exclusive[T]) dispose(p *T) {
	if e.del != nil && p != nil {
		e.del(p)
	}
}

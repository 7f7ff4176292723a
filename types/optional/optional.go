// Package optional provides a value-or-nothing container, the safe result
// type for handle observers that may find no object behind the handle.
package optional

import "golang.org/x/exp/constraints"

// Optional holds either a value of type T or nothing.
type Optional[T any] struct {
	val   T
	valid bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{val: v, valid: true}
}

// None is the absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr copies the pointee into a present optional, or returns None for
// a nil pointer.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.valid
}

// Set stores v as the present value.
func (o *Optional[T]) Set(v T) {
	o.val = v
	o.valid = true
}

// Clear makes the optional absent.
func (o *Optional[T]) Clear() {
	var zero T
	o.val = zero
	o.valid = false
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.val, o.valid
}

// GetOr returns the value, or def when absent.
func (o Optional[T]) GetOr(def T) T {
	if o.valid {
		return o.val
	}
	return def
}

// Unwrap returns the value and panics when absent.
func (o Optional[T]) Unwrap() T {
	if !o.valid {
		panic("optional: value is not set")
	}
	return o.val
}

// CastInt converts a present integer value to another integer type,
// preserving absence.
func CastInt[A, B constraints.Integer](a Optional[A]) (out Optional[B]) {
	if v, ok := a.Get(); ok {
		out.Set(B(v))
	}
	return out
}

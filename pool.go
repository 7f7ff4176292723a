package handles

import "sync"

// Pool recycles combined control blocks. A block handed out by Make goes
// back to the pool when its last handle is released, so steady-state use
// allocates nothing. The weak baseline guards reuse: a block cannot return
// to the pool while any handle in its group is still alive.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(*T)
}

// NewPool creates a pool of combined blocks. init produces the value for a
// freshly allocated block, reset restores a recycled value before it is
// handed out again. Either may be nil.
func NewPool[T any](init func() T, reset func(*T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() any {
		b := &combinedBlock[T]{pool: p}
		if init != nil {
			b.val = init()
		}
		return b
	}
	return p
}

// Make hands out a handle backed by a pooled block, resetting the value
// first.
func (p *Pool[T]) Make() Shared[T] {
	b := p.pool.Get().(*combinedBlock[T])
	if p.reset != nil {
		p.reset(&b.val)
	}
	b.init()
	liveBlocks.Add(1)
	return Shared[T]{cb: b, ptr: &b.val}
}

func (p *Pool[T]) put(b *combinedBlock[T]) {
	p.pool.Put(b)
}

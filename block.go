package handles

import (
	"sync/atomic"

	"github.com/zjkmxy/handles/log"
)

// liveBlocks counts control blocks that have not been torn down yet.
var liveBlocks atomic.Int64

// LiveBlocks returns the number of control blocks currently alive.
// Intended for leak assertions in tests.
func LiveBlocks() int64 {
	return liveBlocks.Load()
}

// block is the control block shared by every handle of one ownership group.
// The interface is sealed: pointerBlock and combinedBlock are the only
// implementations, so the teardown sequence in their release methods covers
// every block kind there is.
type block interface {
	retain()
	release()
	useCount() int
}

// refs holds the strong and weak counts of a control block.
//
// A block starts at strong=1, weak=1. The weak baseline is a synthetic slot
// held by all strong owners collectively: it keeps the block itself alive
// until the last strong owner is gone, and gives pooled blocks their
// "may not be reused yet" guard.
type refs struct {
	strong atomic.Int32
	weak   atomic.Int32
}

func (r *refs) init() {
	r.strong.Store(1)
	r.weak.Store(1)
}

func (r *refs) incStrong() {
	if r.strong.Add(1) <= 1 {
		panic("handles: retain after the managed object was torn down")
	}
}

// decStrong reports whether this call dropped the last strong reference.
func (r *refs) decStrong() bool {
	c := r.strong.Add(-1)
	if c < 0 {
		panic("handles: double release of a strong reference")
	}
	return c == 0
}

// decWeak reports whether this call dropped the last weak reference.
func (r *refs) decWeak() bool {
	c := r.weak.Add(-1)
	if c < 0 {
		panic("handles: weak count driven negative")
	}
	return c == 0
}

func (r *refs) useCount() int {
	return int(r.strong.Load())
}

// pointerBlock owns a separately allocated object through a raw pointer.
// fin, when set, runs exactly once when the last strong reference goes away.
type pointerBlock[T any] struct {
	refs
	ptr *T
	fin func(*T)
}

func newPointerBlock[T any](ptr *T, fin func(*T)) *pointerBlock[T] {
	b := &pointerBlock[T]{ptr: ptr, fin: fin}
	b.init()
	liveBlocks.Add(1)
	return b
}

func (b *pointerBlock[T]) retain() {
	b.incStrong()
}

func (b *pointerBlock[T]) release() {
	if b.decStrong() {
		b.onZeroStrong()
		if b.decWeak() {
			b.onZeroWeak()
		}
	}
}

func (b *pointerBlock[T]) onZeroStrong() {
	if b.fin != nil && b.ptr != nil {
		b.fin(b.ptr)
	}
	b.ptr = nil
}

func (b *pointerBlock[T]) onZeroWeak() {
	liveBlocks.Add(-1)
	if log.HasTrace() {
		log.Trace("pointer block torn down", "live", liveBlocks.Load())
	}
}

// combinedBlock embeds the object storage inline with the counters, so a
// single allocation covers both the metadata and the object. This is the
// Make path; it cannot adopt a pre-existing pointer.
type combinedBlock[T any] struct {
	refs
	val  T
	fin  func(*T)
	pool *Pool[T]
}

func newCombinedBlock[T any](fin func(*T)) *combinedBlock[T] {
	b := &combinedBlock[T]{fin: fin}
	b.init()
	liveBlocks.Add(1)
	return b
}

func (b *combinedBlock[T]) retain() {
	b.incStrong()
}

func (b *combinedBlock[T]) release() {
	if b.decStrong() {
		b.onZeroStrong()
		if b.decWeak() {
			b.onZeroWeak()
		}
	}
}

func (b *combinedBlock[T]) onZeroStrong() {
	if b.fin != nil {
		b.fin(&b.val)
	}
	if b.pool == nil {
		// Destroy in place without freeing the block: drop whatever the
		// value references so it is collectable even while the block lives.
		var zero T
		b.val = zero
	}
	// Pooled storage is left as-is; the pool's reset runs on reuse.
}

func (b *combinedBlock[T]) onZeroWeak() {
	liveBlocks.Add(-1)
	if b.pool != nil {
		b.pool.put(b)
		return
	}
	if log.HasTrace() {
		log.Trace("combined block torn down", "live", liveBlocks.Load())
	}
}

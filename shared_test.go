package handles_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zjkmxy/handles"
)

func TestUseCount(t *testing.T) {
	a := handles.Make(42)
	require.Equal(t, 1, a.UseCount())

	clones := make([]*handles.Shared[int], 4)
	for i := range clones {
		c := a.Clone()
		clones[i] = &c
	}
	require.Equal(t, 5, a.UseCount())
	for _, c := range clones {
		require.Equal(t, 5, c.UseCount())
	}

	for i, c := range clones {
		c.Release()
		require.Equal(t, 4-i, a.UseCount())
	}
	a.Release()
}

func TestTeardownOnce(t *testing.T) {
	torn := 0
	a := handles.MakeWith(func(v *int) { *v = 7 }, func(*int) { torn++ })
	require.Equal(t, 7, a.Deref())

	b := a.Clone()
	c := b.Clone()

	a.Release()
	b.Release()
	require.Equal(t, 0, torn) // c still owns

	c.Release()
	require.Equal(t, 1, torn)
}

func TestPointerFinalizer(t *testing.T) {
	obj := &struct{ closed bool }{}
	a := handles.NewWithFinalizer(obj, func(o *struct{ closed bool }) { o.closed = true })
	b := a.Clone()

	a.Release()
	require.False(t, obj.closed)
	b.Release()
	require.True(t, obj.closed)
}

func TestMoveEmptiesSource(t *testing.T) {
	a := handles.Make("v")
	b := a.Move()

	require.False(t, a.Valid())
	require.Equal(t, 0, a.UseCount())
	a.Release() // releasing a moved-from handle is a no-op

	require.True(t, b.Valid())
	require.Equal(t, 1, b.UseCount())
	require.Equal(t, "v", b.Deref())
	b.Release()
}

type pair struct {
	Left  int
	Right string
}

func TestAliasKeepsObjectAlive(t *testing.T) {
	torn := 0
	a := handles.MakeWith(func(p *pair) { *p = pair{1, "r"} }, func(*pair) { torn++ })
	right := handles.Alias(&a, &a.Get().Right)
	require.Equal(t, 2, a.UseCount())

	a.Release()
	require.Equal(t, 0, torn)
	require.Equal(t, "r", right.Deref())

	right.Release()
	require.Equal(t, 1, torn)
}

func TestEqualityIsPointerIdentity(t *testing.T) {
	a := handles.Make(pair{1, "r"})
	left := handles.Alias(&a, &a.Get().Left)
	right := handles.Alias(&a, &a.Get().Right)

	// Same group, different sub-objects: not the same.
	require.False(t, handles.Same(&left, &right))

	// Independently built aliases of one address: the same.
	left2 := handles.Alias(&a, &a.Get().Left)
	require.True(t, left.Equal(&left2))

	// The struct and its first field share an address across types.
	require.True(t, handles.Same(&a, &left))

	left2.Release()
	right.Release()
	left.Release()
	a.Release()
}

func TestSelfAssign(t *testing.T) {
	a := handles.Make(1)
	a.Assign(&a)
	require.Equal(t, 1, a.UseCount())

	b := a.Clone()
	b.Assign(&a) // already the same object
	require.Equal(t, 2, a.UseCount())

	b.AssignMove(&a) // same object: both left untouched
	require.True(t, a.Valid())
	require.Equal(t, 2, a.UseCount())

	a.Release()
	b.Release()
}

func TestAssign(t *testing.T) {
	torn := 0
	a := handles.MakeWith(nil, func(*int) { torn++ })
	b := handles.Make(9)

	b.Assign(&a)
	require.Equal(t, 2, a.UseCount())
	require.True(t, a.Equal(&b))

	a.Release()
	require.Equal(t, 0, torn)
	b.Release()
	require.Equal(t, 1, torn)
}

func TestAssignMove(t *testing.T) {
	a := handles.Make(1)
	b := handles.Make(2)

	b.AssignMove(&a)
	require.False(t, a.Valid())
	require.Equal(t, 1, b.UseCount())
	require.Equal(t, 1, b.Deref())
	b.Release()
}

func TestResetRoutesThroughBlock(t *testing.T) {
	torn := 0
	a := handles.MakeWith(nil, func(*int) { torn++ })
	b := a.Clone()

	// Resetting one of two owners must not tear the object down.
	a.Reset()
	require.False(t, a.Valid())
	require.Equal(t, 0, torn)
	require.Equal(t, 1, b.UseCount())

	b.Release()
	require.Equal(t, 1, torn)
}

func TestResetTo(t *testing.T) {
	a := handles.Make(1)
	n := 2
	a.ResetTo(&n)
	require.Equal(t, 1, a.UseCount())
	require.Equal(t, 2, a.Deref())
	require.Equal(t, &n, a.Get())
	a.Release()
}

func TestSwap(t *testing.T) {
	a := handles.Make(1)
	b := handles.Make(2)
	c := b.Clone()

	a.Swap(&b)
	require.Equal(t, 2, a.Deref())
	require.Equal(t, 1, b.Deref())
	require.Equal(t, 2, a.UseCount()) // c still shares a's new group
	require.Equal(t, 1, b.UseCount())

	a.Release()
	b.Release()
	c.Release()
}

func TestZeroValue(t *testing.T) {
	var s handles.Shared[int]
	require.False(t, s.Valid())
	require.Equal(t, 0, s.UseCount())
	require.Nil(t, s.Get())
	require.False(t, s.TryDeref().IsSet())
	require.Panics(t, func() { s.Deref() })
	s.Release() // no-op

	c := s.Clone()
	require.False(t, c.Valid())
}

func TestNewNil(t *testing.T) {
	s := handles.New[int](nil)
	require.False(t, s.Valid())
	require.Equal(t, 1, s.UseCount()) // counted, managing nothing
	s.Release()
}

func TestAliasEmptyPanics(t *testing.T) {
	var s handles.Shared[pair]
	var field int
	require.Panics(t, func() { handles.Alias(&s, &field) })
}

func TestTryDerefCopies(t *testing.T) {
	a := handles.Make(10)
	v := a.TryDeref()
	*a.Get() = 11
	require.Equal(t, 10, v.Unwrap())
	require.Equal(t, 11, a.Deref())
	a.Release()
}

func TestCombinedSingleAllocation(t *testing.T) {
	allocs := testing.AllocsPerRun(100, func() {
		s := handles.Make(pair{42, "x"})
		s.Release()
	})
	require.LessOrEqual(t, allocs, 1.0)
}

func TestNoLeakedBlocks(t *testing.T) {
	base := handles.LiveBlocks()

	a := handles.Make(1)
	b := a.Clone()
	al := handles.Alias(&a, a.Get())
	p := handles.New(new(pair))
	require.Equal(t, base+2, handles.LiveBlocks())

	a.Release()
	b.Release()
	al.Release()
	p.Release()
	require.Equal(t, base, handles.LiveBlocks())
}

package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/verify"
	"github.com/joshuapare/heapkit/internal/format"
)

// pageConfig is one 4KB page: 4080 payload bytes in the initial block.
var pageConfig = Config{PageSize: 4096, ArenaPages: 1, Granularity: 16}

// smallConfig is a 1016-byte arena (1000 payload bytes) rounding to 8, so the
// no-split-below-a-header policy can be observed.
var smallConfig = Config{PageSize: 8, ArenaPages: 127, Granularity: 8}

func newTestAllocator(t testing.TB, cfg Config) *Allocator {
	t.Helper()
	al, err := New(nil, nil, &cfg)
	require.NoError(t, err)
	return al
}

func mustAlloc(t testing.TB, al *Allocator, size int) Ptr {
	t.Helper()
	p, err := al.Alloc(size)
	require.NoError(t, err, "Alloc(%d)", size)
	require.NotEqual(t, Nil, p)
	return p
}

// assertInvariants validates the whole block chain.
func assertInvariants(t testing.TB, al *Allocator) {
	t.Helper()
	a := al.Arena()
	require.NotNil(t, a, "arena should exist")
	require.NoError(t, verify.All(a, al.Config().Granularity))
}

// headers lists every block header in address order.
func headers(t testing.TB, al *Allocator) []format.Header {
	t.Helper()
	a := al.Arena()
	require.NotNil(t, a)
	var hs []format.Header
	it := a.Blocks()
	for b, ok := it.Next(); ok; b, ok = it.Next() {
		hs = append(hs, b.Header())
	}
	return hs
}

func busy(curr, prev uint32) format.Header {
	return format.Header{SizeCurr: curr, SizePrev: prev, Busy: true}
}

func free(curr, prev uint32) format.Header {
	return format.Header{SizeCurr: curr, SizePrev: prev}
}

func first(h format.Header) format.Header { h.First = true; return h }
func last(h format.Header) format.Header  { h.Last = true; return h }

func fill(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i)
	}
}

// failingSource fails the first n acquisitions, then serves heap memory.
type failingSource struct {
	failures int
	calls    int
}

func (s *failingSource) Acquire(size int) ([]byte, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, errPages
	}
	return arena.HeapSource{}.Acquire(size)
}

var errPages = &sourceError{"no pages available"}

type sourceError struct{ msg string }

func (e *sourceError) Error() string { return e.msg }

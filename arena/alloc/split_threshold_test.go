package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

// holeOf builds [free hole][busy fence][free tail] and returns the hole's
// payload pointer. The fence keeps the hole from coalescing with the tail.
func holeOf(t *testing.T, al *Allocator, size int) Ptr {
	t.Helper()
	h := mustAlloc(t, al, size)
	mustAlloc(t, al, 8)
	al.Free(h)
	require.Equal(t, size, al.Size(h))
	return h
}

// TestSplitAbsorbsTailSmallerThanHeader verifies that an 8-byte remainder is
// handed out with the block because it cannot host a header.
func TestSplitAbsorbsTailSmallerThanHeader(t *testing.T) {
	al := newTestAllocator(t, smallConfig)
	hole := holeOf(t, al, 64)

	p := mustAlloc(t, al, 56)
	assert.Equal(t, hole, p, "allocation should come from the 64-byte hole")
	assert.Equal(t, 64, al.Size(p), "8-byte tail absorbed into the busy block")
	assert.Equal(t, 1, al.Stats().Absorbed)
	assertInvariants(t, al)
}

// TestSplitKeepsHeaderSizedTail verifies that a remainder of exactly one
// header becomes a zero-length free block.
func TestSplitKeepsHeaderSizedTail(t *testing.T) {
	al := newTestAllocator(t, smallConfig)
	hole := holeOf(t, al, 64)

	p := mustAlloc(t, al, 48)
	assert.Equal(t, hole, p)
	assert.Equal(t, 48, al.Size(p))

	hs := headers(t, al)
	require.Len(t, hs, 4)
	assert.Equal(t, first(busy(48, 0)), hs[0])
	assert.Equal(t, free(0, 48), hs[1], "header-sized remainder becomes an empty free block")
	assert.Equal(t, busy(8, 0), hs[2], "fence size_prev follows the new empty block")
	assertInvariants(t, al)
}

func TestNoSplitExactFit(t *testing.T) {
	al := newTestAllocator(t, smallConfig)
	hole := holeOf(t, al, 64)
	splitsBefore := al.Stats().Splits

	p := mustAlloc(t, al, 64)
	assert.Equal(t, hole, p)
	assert.Equal(t, 64, al.Size(p))
	assert.Equal(t, splitsBefore, al.Stats().Splits)
	assert.Zero(t, al.Stats().Absorbed)
	assertInvariants(t, al)
}

// TestSplitMultipleBoundaries is a table-driven check of split behaviour around
// the header-sized threshold.
func TestSplitMultipleBoundaries(t *testing.T) {
	testCases := []struct {
		name      string
		holeSize  int
		request   int
		wantSize  int
		wantSplit bool
	}{
		{"exact fit", 128, 128, 128, false},
		{"8-byte rest absorbed", 128, 120, 128, false},
		{"rounding then absorbed", 128, 113, 128, false},
		{"header-sized rest split", 128, 112, 112, true},
		{"large rest split", 128, 8, 8, true},
		{"zero request split", 128, 0, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			al := newTestAllocator(t, smallConfig)
			hole := holeOf(t, al, tc.holeSize)
			splits := al.Stats().Splits

			p := mustAlloc(t, al, tc.request)
			assert.Equal(t, hole, p)
			assert.Equal(t, tc.wantSize, al.Size(p))
			if tc.wantSplit {
				assert.Equal(t, splits+1, al.Stats().Splits)
				rest := al.Arena().BlockOfPayload(int(p)).Next()
				assert.False(t, rest.Busy())
				assert.Equal(t, tc.holeSize-tc.wantSize-format.HeaderSize, rest.SizeCurr())
			} else {
				assert.Equal(t, splits, al.Stats().Splits)
			}
			assertInvariants(t, al)
		})
	}
}

// TestSplitLastBlockMovesLastFlag verifies the tail inherits the last flag.
func TestSplitLastBlockMovesLastFlag(t *testing.T) {
	al := newTestAllocator(t, pageConfig)
	p := mustAlloc(t, al, 100)

	b := al.Arena().BlockOfPayload(int(p))
	assert.False(t, b.Last())
	assert.True(t, b.Next().Last())
	assert.Equal(t, 112, b.Next().SizePrev())
}

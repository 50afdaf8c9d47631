package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

func newTestArena(t testing.TB, size int) *Arena {
	t.Helper()
	a, err := New(HeapSource{}, size)
	require.NoError(t, err)
	return a
}

func TestNew_InitialBlock(t *testing.T) {
	a := newTestArena(t, 4096)

	b := a.First()
	assert.Equal(t, 0, b.Offset())
	assert.Equal(t, 4096-format.HeaderSize, b.SizeCurr())
	assert.Equal(t, 0, b.SizePrev())
	assert.False(t, b.Busy())
	assert.True(t, b.First())
	assert.True(t, b.Last())
	assert.Equal(t, a.MaxPayload(), b.SizeCurr())
}

func TestNew_BadSize(t *testing.T) {
	for _, size := range []int{0, -1, format.HeaderSize} {
		_, err := New(HeapSource{}, size)
		require.ErrorIs(t, err, ErrBadSize, "size %d", size)
	}
}

func TestNew_SourceFailure(t *testing.T) {
	boom := errors.New("no pages")
	calls := 0
	src := FuncSource(func(int) ([]byte, error) {
		calls++
		return nil, boom
	})

	a, err := New(src, 4096)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, a)
	assert.Equal(t, 1, calls)
}

func TestNew_ShortRegion(t *testing.T) {
	src := FuncSource(func(size int) ([]byte, error) {
		return make([]byte, size/2), nil
	})
	_, err := New(src, 4096)
	require.ErrorIs(t, err, ErrShortRegion)
}

func TestBlock_Navigation(t *testing.T) {
	a := newTestArena(t, 1024)

	// Hand-build two blocks: [busy 64][free rest].
	first := a.First()
	first.SetSizeCurr(64)
	first.SetBusy(true)
	first.SetLast(false)

	second := first.Next()
	assert.Equal(t, 64+format.HeaderSize, second.Offset())
	second.Reset()
	second.SetSizeCurr(1024 - 2*format.HeaderSize - 64)
	second.SetSizePrev(64)
	second.SetLast(true)

	assert.Equal(t, first.Offset(), second.Prev().Offset())
	assert.Equal(t, first.Payload()-format.HeaderSize, first.Offset())
	assert.Equal(t, first.Offset(), a.BlockOfPayload(first.Payload()).Offset())
	assert.Len(t, first.Bytes(), 64)
	assert.Equal(t, 64, cap(first.Bytes()), "payload slice must not reach the next header")

	h := second.Header()
	assert.Equal(t, format.Header{SizeCurr: uint32(second.SizeCurr()), SizePrev: 64, Last: true}, h)
}

func TestBlock_FlagsIndependent(t *testing.T) {
	a := newTestArena(t, 256)
	b := a.First()

	b.SetBusy(true)
	assert.True(t, b.First())
	assert.True(t, b.Last())
	b.SetFirst(false)
	assert.True(t, b.Busy())
	assert.True(t, b.Last())
	b.SetLast(false)
	assert.True(t, b.Busy())
	assert.False(t, b.First())

	size := b.SizeCurr()
	b.SetSizePrev(48)
	assert.Equal(t, size, b.SizeCurr())
}

func TestBlockIterator(t *testing.T) {
	a := newTestArena(t, 1024)
	first := a.First()
	first.SetSizeCurr(32)
	first.SetLast(false)
	second := first.Next()
	second.SetSizeCurr(1024 - 2*format.HeaderSize - 32)
	second.SetSizePrev(32)
	second.SetLast(true)

	var offsets []int
	it := a.Blocks()
	for b, ok := it.Next(); ok; b, ok = it.Next() {
		offsets = append(offsets, b.Offset())
	}
	assert.Equal(t, []int{0, 32 + format.HeaderSize}, offsets)

	_, ok := it.Next()
	assert.False(t, ok, "exhausted iterator stays exhausted")
}

func TestBlockIterator_StopsAtRegionEnd(t *testing.T) {
	a := newTestArena(t, 256)
	// Corrupt: clear the last flag while the block still spans the region.
	a.First().SetLast(false)

	count := 0
	it := a.Blocks()
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestRelease(t *testing.T) {
	a := newTestArena(t, 256)
	require.NoError(t, a.Release())
	require.ErrorIs(t, a.Release(), ErrReleased)
}

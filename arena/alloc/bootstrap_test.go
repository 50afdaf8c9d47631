package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/arena"
)

// TestBootstrap_Retry verifies a page source failure is retried on the next
// call when StickyFailure is off.
func TestBootstrap_Retry(t *testing.T) {
	src := &failingSource{failures: 1}
	al, err := New(src, nil, &pageConfig)
	require.NoError(t, err)

	p, err := al.Alloc(16)
	require.ErrorIs(t, err, ErrNoMemory)
	assert.Equal(t, Nil, p)
	assert.False(t, al.Created())
	assert.Equal(t, 1, al.Stats().FailPageSource)

	p = mustAlloc(t, al, 16)
	assert.True(t, al.Created())
	assert.Equal(t, 2, src.calls)
	assert.Equal(t, 2, al.Stats().Bootstraps)
	assert.Equal(t, Ptr(16), p)
	assertInvariants(t, al)
}

// TestBootstrap_Sticky verifies the page source is asked only once.
func TestBootstrap_Sticky(t *testing.T) {
	src := &failingSource{failures: 1}
	cfg := pageConfig
	cfg.StickyFailure = true
	al, err := New(src, nil, &cfg)
	require.NoError(t, err)

	for range 3 {
		p, err := al.Alloc(16)
		require.ErrorIs(t, err, ErrNoMemory)
		assert.Equal(t, Nil, p)
	}
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 3, al.Stats().FailPageSource)
	assert.ErrorIs(t, al.Init(), errPages)
	assert.False(t, al.Created())
}

func TestInit_Explicit(t *testing.T) {
	al := newTestAllocator(t, pageConfig)
	require.NoError(t, al.Init())
	require.True(t, al.Created())
	assert.Equal(t, []byte(nil), al.Bytes(Nil))

	// Idempotent.
	require.NoError(t, al.Init())
	assert.Equal(t, 1, al.Stats().Bootstraps)
	assert.Equal(t, 4096, al.Arena().Size())
	assertInvariants(t, al)
}

func TestInit_ErrorWrapsSource(t *testing.T) {
	al, err := New(&failingSource{failures: 1}, nil, &pageConfig)
	require.NoError(t, err)
	require.ErrorIs(t, al.Init(), errPages)
	require.NoError(t, al.Init())
}

func TestInit_ShortRegion(t *testing.T) {
	src := arena.FuncSource(func(size int) ([]byte, error) {
		return make([]byte, size/2), nil
	})
	al, err := New(src, nil, &pageConfig)
	require.NoError(t, err)
	require.ErrorIs(t, al.Init(), arena.ErrShortRegion)

	_, err = al.Alloc(1)
	require.ErrorIs(t, err, ErrNoMemory)
}

func TestFree_BeforeBootstrap(t *testing.T) {
	al := newTestAllocator(t, pageConfig)
	al.Free(Ptr(16))
	assert.False(t, al.Created())
	assert.Zero(t, al.Size(Ptr(16)))
	assert.Nil(t, al.Bytes(Ptr(16)))
}

func TestAllocator_MmapSource(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	al, err := New(arena.MmapSource{}, nil, &DefaultConfig)
	require.NoError(t, err)
	t.Cleanup(func() { _ = al.Close() })

	p := mustAlloc(t, al, 1000)
	fill(al.Bytes(p), 3)
	q, err := al.Realloc(p, 20000)
	require.NoError(t, err)
	assert.Equal(t, byte(3), al.Bytes(q)[0])
	al.Free(q)
	assertInvariants(t, al)
}

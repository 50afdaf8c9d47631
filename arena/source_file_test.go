//go:build unix

package arena

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

func TestFileSource(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	path := filepath.Join(t.TempDir(), "arena.bin")
	src := &FileSource{Path: path}

	a, err := New(src, 4096)
	require.NoError(t, err)
	require.NotNil(t, src.Region())

	_, err = src.Acquire(4096)
	require.Error(t, err, "one region at a time")

	require.NoError(t, a.Release())
	assert.Nil(t, src.Region())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 4096)
	h, err := format.DecodeHeader(data, 0)
	require.NoError(t, err)
	assert.Equal(t, format.Header{SizeCurr: 4080, First: true, Last: true}, h)
}

func TestFileSource_BadPath(t *testing.T) {
	src := &FileSource{Path: filepath.Join(t.TempDir(), "missing", "arena.bin")}
	_, err := New(src, 4096)
	require.Error(t, err)
}

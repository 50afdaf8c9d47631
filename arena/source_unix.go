//go:build linux || darwin || freebsd

package arena

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/heapkit/internal/format"
)

// MmapSource maps anonymous private memory for each region. The kernel hands
// out zero-filled pages, so no explicit clearing is needed.
type MmapSource struct {
	// PageSize is the mapping granularity. Zero means the OS page size.
	PageSize int
}

// Acquire maps size bytes rounded up to the page size and returns the first
// size bytes of the mapping.
func (s MmapSource) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmap source: size %d: %w", size, ErrBadSize)
	}
	page := s.PageSize
	if page <= 0 {
		page = unix.Getpagesize()
	}
	length := format.Round(size, page)
	data, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap source: map %d bytes: %w", length, err)
	}
	return data[:size:length], nil
}

// Release unmaps a region previously returned by Acquire.
func (s MmapSource) Release(region []byte) error {
	if len(region) == 0 && cap(region) == 0 {
		return nil
	}
	err := unix.Munmap(region[:cap(region)])
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}

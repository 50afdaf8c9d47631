package slab

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Config fixes the cache geometry.
type Config struct {
	PageSize      int // page source granularity (power of two)
	SlabPages     int // pages per slab
	CacheSize     int // maximum number of slabs held at once
	MaxObjectSize int // largest object, at most one slab
}

// DefaultSlabPages is the slab size in pages.
const DefaultSlabPages = 4

// DefaultConfig holds up to 16 slabs of four 4KB pages each. An object may
// take a whole slab.
var DefaultConfig = Config{
	PageSize:      format.DefaultPageSize,
	SlabPages:     DefaultSlabPages,
	CacheSize:     16,
	MaxObjectSize: DefaultSlabPages * format.DefaultPageSize,
}

// SlabSize returns the bytes in one slab.
func (c Config) SlabSize() int { return c.PageSize * c.SlabPages }

// Validate checks the geometry.
func (c Config) Validate() error {
	if !format.IsPowerOfTwo(c.PageSize) {
		return fmt.Errorf("%w: page size %d is not a power of two", ErrBadConfig, c.PageSize)
	}
	if c.SlabPages <= 0 || c.SlabPages > format.MaxArenaSize/c.PageSize {
		return fmt.Errorf("%w: slab pages %d", ErrBadConfig, c.SlabPages)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("%w: cache size %d", ErrBadConfig, c.CacheSize)
	}
	if c.MaxObjectSize <= 0 || c.MaxObjectSize > c.SlabSize() {
		return fmt.Errorf("%w: max object size %d must be in (0, %d]", ErrBadConfig, c.MaxObjectSize, c.SlabSize())
	}
	return nil
}

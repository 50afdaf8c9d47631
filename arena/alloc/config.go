package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Config fixes the arena geometry.
type Config struct {
	// PageSize is the page source granularity (power of two).
	PageSize int

	// ArenaPages is the arena size in pages.
	ArenaPages int

	// Granularity is the payload rounding unit (power of two, at most
	// PageSize, dividing the 16-byte header).
	Granularity int

	// StickyFailure makes the first page source failure permanent: later calls
	// fail without asking the page source again.
	StickyFailure bool
}

// DefaultConfig is a 64KB arena of 4KB pages with 16-byte rounding.
var DefaultConfig = Config{
	PageSize:    format.DefaultPageSize,
	ArenaPages:  format.DefaultArenaPages,
	Granularity: format.DefaultGranularity,
}

// ArenaSize returns PageSize * ArenaPages.
func (c Config) ArenaSize() int { return c.PageSize * c.ArenaPages }

// MaxPayload returns the largest request that can ever succeed.
func (c Config) MaxPayload() int { return c.ArenaSize() - format.HeaderSize }

// Validate checks the geometry.
func (c Config) Validate() error {
	if !format.IsPowerOfTwo(c.PageSize) {
		return fmt.Errorf("%w: page size %d is not a power of two", ErrBadConfig, c.PageSize)
	}
	if !format.IsPowerOfTwo(c.Granularity) {
		return fmt.Errorf("%w: granularity %d is not a power of two", ErrBadConfig, c.Granularity)
	}
	if c.Granularity > c.PageSize || format.HeaderSize%c.Granularity != 0 {
		return fmt.Errorf("%w: granularity %d must divide the %d-byte header and not exceed the page size",
			ErrBadConfig, c.Granularity, format.HeaderSize)
	}
	if c.ArenaPages <= 0 {
		return fmt.Errorf("%w: arena pages %d", ErrBadConfig, c.ArenaPages)
	}
	if c.ArenaPages > format.MaxArenaSize/c.PageSize {
		return fmt.Errorf("%w: arena of %d x %d bytes exceeds %d", ErrBadConfig,
			c.ArenaPages, c.PageSize, format.MaxArenaSize)
	}
	if c.ArenaSize() <= format.HeaderSize {
		return fmt.Errorf("%w: arena of %d bytes cannot hold a header", ErrBadConfig, c.ArenaSize())
	}
	return nil
}

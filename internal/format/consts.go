// Package format holds the on-arena layout of block headers: field offsets,
// the rounding granularity, and allocation-free encode/decode helpers. Higher
// level packages (arena, alloc) navigate blocks through these primitives so the
// byte layout is defined in exactly one place.
package format

const (
	// HeaderSize is the size of the header preceding every block payload.
	//
	// Layout (little-endian):
	//
	//	Offset  Size  Description
	//	0x00    4     size_curr: payload bytes of this block
	//	0x04    4     size_prev: payload bytes of the previous block (0 if first)
	//	0x08    1     busy flag (0 or 1)
	//	0x09    1     first flag (0 or 1)
	//	0x0A    1     last flag (0 or 1)
	//	0x0B    5     reserved, always zero
	HeaderSize = 0x10

	SizeCurrOffset = 0x00
	SizePrevOffset = 0x04
	BusyOffset     = 0x08
	FirstOffset    = 0x09
	LastOffset     = 0x0A

	// DefaultGranularity is the rounding unit for payload sizes. It divides
	// HeaderSize so every header lands on a granularity boundary.
	DefaultGranularity = 0x10

	// DefaultPageSize is the page size assumed for the page source.
	DefaultPageSize = 0x1000

	// DefaultArenaPages is the number of pages in one arena.
	DefaultArenaPages = 16

	// MaxArenaSize bounds the arena so sizes fit the 32-bit header fields.
	MaxArenaSize = 1<<31 - 1
)

const (
	flagClear uint8 = 0
	flagSet   uint8 = 1
)

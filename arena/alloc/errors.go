package alloc

import "errors"

var (
	// ErrNoMemory indicates the request cannot be served: it is larger than the
	// arena can ever hold, no free block fits, or the arena could not be created.
	ErrNoMemory = errors.New("alloc: out of memory")

	// ErrClosed indicates the allocator released its arena.
	ErrClosed = errors.New("alloc: allocator closed")

	// ErrBadConfig indicates an invalid Config.
	ErrBadConfig = errors.New("alloc: invalid config")
)

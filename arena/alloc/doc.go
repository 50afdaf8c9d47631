// Package alloc implements malloc/free/realloc over a single fixed-size arena.
//
// # Overview
//
// The allocator keeps an implicit free list: every block in the arena carries
// a boundary tag (see package arena), and free space is found by walking the
// chain of headers from the arena base. There is no index outside the arena
// bytes. Placement is first-fit in address order.
//
//   - Alloc(size): round up to the granularity, take the first free block that
//     fits, split off the unused tail as a new free block
//   - Free(ptr): clear the busy flag and coalesce with free neighbours, right
//     first and then left, so no two adjacent blocks are ever both free
//   - Realloc(ptr, size): keep the pointer when shrinking, grow in place into a
//     free right neighbour when it is large enough, otherwise move
//
// # Usage Example
//
//	al, err := alloc.New(nil, nil, nil) // heap page source, no tracker, defaults
//	if err != nil {
//	    return err
//	}
//
//	p, err := al.Alloc(200)
//	if err != nil {
//	    return err // alloc.ErrNoMemory
//	}
//	copy(al.Bytes(p), "payload")
//
//	p, err = al.Realloc(p, 400)
//	...
//	al.Free(p)
//
// # Arena Bootstrap
//
// The arena is created on the first Alloc, or explicitly with Init. When the
// page source fails, the arena stays absent and the next call asks again.
// Config.StickyFailure turns the first failure into a terminal state.
//
// # Split Threshold
//
// A free block is split only when the remainder can hold a header. With a
// 16-byte header, at most 15 bytes are wasted inside a busy block by this
// policy, on top of rounding.
//
// # Errors
//
// Every allocation failure (size too large, no block fits, page source
// failure) is reported as ErrNoMemory. The cause is logged at debug level and
// counted in Stats.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally with one lock around every call.
package alloc

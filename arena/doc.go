// Package arena owns the single fixed-size memory region managed by the heap
// allocator and the boundary-tag view over it.
//
// # Overview
//
// An Arena is one contiguous byte region obtained from a PageSource. It is
// always partitioned into a linear sequence of blocks. Each block is a
// 16-byte header followed by its payload:
//
//	+--------+-----------+--------+-----------+-----+
//	| header | payload 0 | header | payload 1 | ... |
//	+--------+-----------+--------+-----------+-----+
//
// The header records the payload size of the block, the payload size of the
// block before it, and three flags (busy, first, last). These boundary tags
// are the only structure: there is no separate index, and a walk is bounded
// by the last flag alone.
//
// # Navigation
//
//	b := a.First()
//	for {
//	    fmt.Println(b.SizeCurr(), b.Busy())
//	    if b.Last() {
//	        break
//	    }
//	    b = b.Next()
//	}
//
// Block accessors perform no validation. Keeping the chain consistent is the
// job of the allocator in package github.com/joshuapare/heapkit/arena/alloc.
//
// # Page Sources
//
//   - HeapSource: a zeroed Go slice
//   - MmapSource: an anonymous private mapping (unix), Go slice elsewhere
//   - FileSource: a shared mapping of a file, so the arena persists (unix)
//   - FuncSource: adapter from a function, mostly for tests
//
// # Thread Safety
//
// Arena instances are not thread-safe. Callers must serialize access.
package arena

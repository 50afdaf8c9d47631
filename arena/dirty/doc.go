// Package dirty tracks which pages of an arena the allocator has written.
//
// # Overview
//
// Every header write performed by the allocator (split, merge, flag change)
// is reported as a byte range. The tracker keeps the raw ranges and, on
// request, page-aligns, sorts and merges them:
//
//	Touched pages: [0, 1, 2, 5, 6] → Ranges: [0x0-0x3000, 0x5000-0x7000]
//
// This shows how localized an allocation pattern is, and which pages of an
// mmap-backed arena a sequence of operations has faulted in. For arenas backed
// by a shared file mapping, Flush writes exactly those pages back with msync.
//
// # Usage
//
//	dt := dirty.NewTracker(format.DefaultPageSize)
//	al, err := alloc.New(src, dt, nil)
//	...
//	for _, r := range dt.Ranges() {
//	    fmt.Printf("0x%X-0x%X\n", r.Off, r.Off+r.Len)
//	}
//
// # Thread Safety
//
// Tracker instances are not thread-safe.
package dirty

package dirty

// DirtyTracker is the minimal interface for components that only report
// written regions (the allocator) and never inspect them.
type DirtyTracker interface {
	// Add marks a byte range as written.
	// off is the offset from the arena base, length is the number of bytes.
	Add(off, length int)
}

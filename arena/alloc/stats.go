package alloc

// Stats holds allocator counters. They describe activity only; the block
// chain in the arena is the single source of truth for its layout.
type Stats struct {
	AllocCalls   int // Total Alloc() calls, including those made by Realloc
	FreeCalls    int // Free() calls with a non-nil pointer
	ReallocCalls int // Realloc() calls with a non-nil pointer

	FailTooLarge   int // Requests larger than the arena can ever hold
	FailNoFit      int // Well-formed requests with no free block large enough
	FailPageSource int // Requests failed because the arena could not be created

	Bootstraps       int // Page source requests
	Splits           int // Free blocks split in two
	Absorbed         int // Splits skipped because the tail could not hold a header
	CoalesceForward  int // Merges with the right neighbour on Free
	CoalesceBackward int // Merges into the left neighbour on Free
	GrowInPlace      int // Realloc grown into the right neighbour
	Moves            int // Realloc that copied to a new block
	ShrinkNoop       int // Realloc to a size that already fits
}

// Failures returns the total number of failed requests.
func (s Stats) Failures() int {
	return s.FailTooLarge + s.FailNoFit + s.FailPageSource
}

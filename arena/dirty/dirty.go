package dirty

import (
	"sort"

	"github.com/joshuapare/heapkit/internal/format"
)

// defaultRangeCapacity is the pre-allocated capacity for touched ranges.
const defaultRangeCapacity = 64

// Range is a touched byte range, offsets from the arena base.
type Range struct {
	Off int64
	Len int64
}

// Tracker accumulates touched ranges.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	ranges   []Range // raw ranges, coalesced on demand
	pageSize int64
}

// NewTracker creates a tracker aligning to pageSize. A non-positive pageSize
// selects the default 4KB.
func NewTracker(pageSize int) *Tracker {
	if pageSize <= 0 {
		pageSize = format.DefaultPageSize
	}
	return &Tracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: int64(pageSize),
	}
}

// Add records a touched range. It only appends; alignment and merging happen
// in Ranges.
func (t *Tracker) Add(off, length int) {
	if length <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{
		Off: int64(off),
		Len: int64(length),
	})
}

// Reset clears all tracked ranges.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Len returns the number of raw ranges recorded since the last Reset.
func (t *Tracker) Len() int { return len(t.ranges) }

// RawRanges returns a copy of the uncoalesced ranges.
func (t *Tracker) RawRanges() []Range {
	result := make([]Range, len(t.ranges))
	copy(result, t.ranges)
	return result
}

// Pages returns the number of distinct pages touched.
func (t *Tracker) Pages() int {
	n := 0
	for _, r := range t.Ranges() {
		n += int(r.Len / t.pageSize)
	}
	return n
}

// Ranges page-aligns all ranges, sorts them, and merges overlapping or
// adjacent ones. The result is a new slice of non-overlapping, sorted ranges.
func (t *Tracker) Ranges() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			end := max(current.Off+current.Len, next.Off+next.Len)
			current.Len = end - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}

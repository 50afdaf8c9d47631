package verify

import (
	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// Summary aggregates the block chain.
type Summary struct {
	Blocks      int
	Busy        int
	Free        int
	BusyBytes   int // payload bytes in busy blocks
	FreeBytes   int // payload bytes in free blocks
	HeaderBytes int
	LargestFree int
}

// Fragmentation returns 1 - LargestFree/FreeBytes: 0 when all free space is
// one block, approaching 1 as it scatters.
func (s Summary) Fragmentation() float64 {
	if s.FreeBytes == 0 {
		return 0
	}
	return 1 - float64(s.LargestFree)/float64(s.FreeBytes)
}

// Summarize walks the chain once.
func Summarize(a *arena.Arena) Summary {
	var s Summary
	it := a.Blocks()
	for b, ok := it.Next(); ok; b, ok = it.Next() {
		s.Blocks++
		s.HeaderBytes += format.HeaderSize
		if b.Busy() {
			s.Busy++
			s.BusyBytes += b.SizeCurr()
			continue
		}
		s.Free++
		s.FreeBytes += b.SizeCurr()
		s.LargestFree = max(s.LargestFree, b.SizeCurr())
	}
	return s
}

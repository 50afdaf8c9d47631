package verify

import (
	"fmt"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// ValidationError describes one broken invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// All validates every invariant and returns the first violation, or nil.
// granularity of 0 skips the rounding check.
func All(a *arena.Arena, granularity int) error {
	if err := Chain(a); err != nil {
		return err
	}
	if err := Coverage(a); err != nil {
		return err
	}
	if err := PrevSizes(a); err != nil {
		return err
	}
	if err := Coalesced(a); err != nil {
		return err
	}
	if granularity > 0 {
		if err := Granularity(a, granularity); err != nil {
			return err
		}
	}
	return nil
}

// Chain validates that the header walk is well-formed.
func Chain(a *arena.Arena) error {
	size := a.Size()
	b := a.First()
	if !b.First() {
		return &ValidationError{Type: "Chain", Message: "first block is not flagged first", Offset: 0}
	}
	for {
		end := b.Offset() + format.HeaderSize + b.SizeCurr()
		if end > size {
			return &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("block ends at %d, past region end %d", end, size),
				Offset:  b.Offset(),
			}
		}
		if b.Offset() != 0 && b.First() {
			return &ValidationError{Type: "Chain", Message: "inner block flagged first", Offset: b.Offset()}
		}
		if b.Last() {
			if end != size {
				return &ValidationError{
					Type:    "Chain",
					Message: fmt.Sprintf("last block ends at %d, region ends at %d", end, size),
					Offset:  b.Offset(),
				}
			}
			return nil
		}
		if end+format.HeaderSize > size {
			return &ValidationError{
				Type:    "Chain",
				Message: "block not flagged last but no room for a following header",
				Offset:  b.Offset(),
			}
		}
		b = b.Next()
	}
}

// Coalesced validates that no two adjacent blocks are both free.
func Coalesced(a *arena.Arena) error {
	var prev arena.Block
	havePrev := false
	it := a.Blocks()
	for b, ok := it.Next(); ok; b, ok = it.Next() {
		if havePrev && !prev.Busy() && !b.Busy() {
			return &ValidationError{
				Type:    "Coalesced",
				Message: fmt.Sprintf("free block follows free block at 0x%X", prev.Offset()),
				Offset:  b.Offset(),
			}
		}
		prev, havePrev = b, true
	}
	return nil
}

// PrevSizes validates the backward links.
func PrevSizes(a *arena.Arena) error {
	prevSize := 0
	it := a.Blocks()
	for b, ok := it.Next(); ok; b, ok = it.Next() {
		if b.SizePrev() != prevSize {
			return &ValidationError{
				Type:    "PrevSizes",
				Message: fmt.Sprintf("size_prev %d, predecessor size_curr %d", b.SizePrev(), prevSize),
				Offset:  b.Offset(),
			}
		}
		prevSize = b.SizeCurr()
	}
	return nil
}

// Coverage validates sum(size_curr + header) == region size.
func Coverage(a *arena.Arena) error {
	total := 0
	it := a.Blocks()
	for b, ok := it.Next(); ok; b, ok = it.Next() {
		total += b.SizeCurr() + format.HeaderSize
	}
	if total != a.Size() {
		return &ValidationError{
			Type:    "Coverage",
			Message: fmt.Sprintf("blocks cover %d bytes, region is %d", total, a.Size()),
			Offset:  -1,
		}
	}
	return nil
}

// Granularity validates that every payload size is a multiple of g.
func Granularity(a *arena.Arena, g int) error {
	it := a.Blocks()
	for b, ok := it.Next(); ok; b, ok = it.Next() {
		if b.SizeCurr()%g != 0 {
			return &ValidationError{
				Type:    "Granularity",
				Message: fmt.Sprintf("size_curr %d not a multiple of %d", b.SizeCurr(), g),
				Offset:  b.Offset(),
			}
		}
	}
	return nil
}

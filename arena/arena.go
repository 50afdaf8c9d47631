package arena

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Arena is the managed region, partitioned into blocks.
type Arena struct {
	data []byte
	src  PageSource
}

// New acquires size bytes from src and lays out one free block spanning the
// whole usable region, marked both first and last.
func New(src PageSource, size int) (*Arena, error) {
	if size <= format.HeaderSize || size > format.MaxArenaSize {
		return nil, fmt.Errorf("arena: size %d: %w", size, ErrBadSize)
	}
	data, err := src.Acquire(size)
	if err != nil {
		return nil, fmt.Errorf("arena: acquire %d bytes: %w", size, err)
	}
	if len(data) != size {
		if r, ok := src.(Releaser); ok {
			_ = r.Release(data)
		}
		return nil, fmt.Errorf("arena: got %d of %d bytes: %w", len(data), size, ErrShortRegion)
	}

	a := &Arena{data: data, src: src}
	first := a.First()
	first.Reset()
	first.SetSizeCurr(size - format.HeaderSize)
	first.SetFirst(true)
	first.SetLast(true)
	return a, nil
}

// Bytes returns the raw region, headers included.
func (a *Arena) Bytes() []byte { return a.data }

// Size returns the region size in bytes.
func (a *Arena) Size() int { return len(a.data) }

// MaxPayload returns the largest payload a single block can ever hold.
func (a *Arena) MaxPayload() int { return len(a.data) - format.HeaderSize }

// First returns the block at the arena base.
func (a *Arena) First() Block { return Block{a: a, off: 0} }

// BlockAt returns the block whose header starts at off. No validation.
func (a *Arena) BlockAt(off int) Block { return Block{a: a, off: off} }

// BlockOfPayload returns the block owning the payload that starts at off.
func (a *Arena) BlockOfPayload(off int) Block {
	return Block{a: a, off: off - format.HeaderSize}
}

// Blocks returns an iterator over all blocks in address order.
func (a *Arena) Blocks() *BlockIterator {
	return &BlockIterator{next: a.First()}
}

// Release hands the region back to the page source when it supports release.
// The arena is unusable afterwards.
func (a *Arena) Release() error {
	if a.data == nil {
		return ErrReleased
	}
	var err error
	if r, ok := a.src.(Releaser); ok {
		err = r.Release(a.data)
	}
	a.data = nil
	return err
}

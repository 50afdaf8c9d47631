package arena

import "github.com/joshuapare/heapkit/internal/format"

// BlockIterator walks blocks from the first to the one marked last.
type BlockIterator struct {
	next Block
	done bool
}

// Next returns the next block and true, or false once the last block has been
// returned. A header that would run past the region also ends the walk so a
// corrupted chain cannot read out of bounds.
func (it *BlockIterator) Next() (Block, bool) {
	if it.done {
		return Block{}, false
	}
	b := it.next
	data := b.a.data
	if b.off < 0 || b.off+format.HeaderSize > len(data) {
		it.done = true
		return Block{}, false
	}
	if b.Last() || b.off+format.HeaderSize+b.SizeCurr() >= len(data) {
		it.done = true
	} else {
		it.next = b.Next()
	}
	return b, true
}

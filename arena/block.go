package arena

import "github.com/joshuapare/heapkit/internal/format"

// Block is a view of one block header inside an Arena. It is a small value
// (arena pointer plus header offset) and is cheap to copy.
type Block struct {
	a   *Arena
	off int
}

// Offset returns the header offset from the arena base.
func (b Block) Offset() int { return b.off }

// Payload returns the payload offset from the arena base.
func (b Block) Payload() int { return b.off + format.HeaderSize }

// Bytes returns the payload as a slice of exactly SizeCurr bytes.
func (b Block) Bytes() []byte {
	start := b.Payload()
	return b.a.data[start : start+b.SizeCurr() : start+b.SizeCurr()]
}

// Next returns the block that follows b. Valid only when b is not last.
func (b Block) Next() Block {
	return Block{a: b.a, off: b.off + format.HeaderSize + b.SizeCurr()}
}

// Prev returns the block that precedes b. Valid only when b is not first.
func (b Block) Prev() Block {
	return Block{a: b.a, off: b.off - format.HeaderSize - b.SizePrev()}
}

func (b Block) SizeCurr() int {
	return int(format.ReadU32(b.a.data, b.off+format.SizeCurrOffset))
}

func (b Block) SetSizeCurr(n int) {
	format.PutU32(b.a.data, b.off+format.SizeCurrOffset, uint32(n))
}

func (b Block) SizePrev() int {
	return int(format.ReadU32(b.a.data, b.off+format.SizePrevOffset))
}

func (b Block) SetSizePrev(n int) {
	format.PutU32(b.a.data, b.off+format.SizePrevOffset, uint32(n))
}

func (b Block) Busy() bool      { return format.ReadFlag(b.a.data, b.off+format.BusyOffset) }
func (b Block) SetBusy(v bool)  { format.PutFlag(b.a.data, b.off+format.BusyOffset, v) }
func (b Block) First() bool     { return format.ReadFlag(b.a.data, b.off+format.FirstOffset) }
func (b Block) SetFirst(v bool) { format.PutFlag(b.a.data, b.off+format.FirstOffset, v) }
func (b Block) Last() bool      { return format.ReadFlag(b.a.data, b.off+format.LastOffset) }
func (b Block) SetLast(v bool)  { format.PutFlag(b.a.data, b.off+format.LastOffset, v) }

// Reset zeroes the whole header: sizes 0, every flag clear.
func (b Block) Reset() {
	clear(b.a.data[b.off : b.off+format.HeaderSize])
}

// Header returns a detached copy of the header fields.
func (b Block) Header() format.Header {
	return format.Header{
		SizeCurr: uint32(b.SizeCurr()),
		SizePrev: uint32(b.SizePrev()),
		Busy:     b.Busy(),
		First:    b.First(),
		Last:     b.Last(),
	}
}

package alloc

import (
	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/format"
)

// split carves a busy block of exactly size bytes out of b, which must have
// SizeCurr() >= size. When the remainder cannot hold a header the whole block
// is handed out instead.
func (al *Allocator) split(b arena.Block, size int) {
	rest := b.SizeCurr() - size
	if rest >= format.HeaderSize {
		rest -= format.HeaderSize
		b.SetSizeCurr(size)

		r := b.Next()
		r.Reset()
		r.SetSizeCurr(rest)
		r.SetSizePrev(size)
		if b.Last() {
			b.SetLast(false)
			r.SetLast(true)
		} else {
			n := r.Next()
			n.SetSizePrev(rest)
			al.touch(n)
		}
		al.touch(r)
		al.stats.Splits++
	} else if rest > 0 {
		al.stats.Absorbed++
	}
	b.SetBusy(true)
	al.touch(b)
}

// merge folds right, which must directly follow left, into left. The right
// header becomes payload space of left.
func (al *Allocator) merge(left, right arena.Block) {
	size := left.SizeCurr() + right.SizeCurr() + format.HeaderSize
	left.SetSizeCurr(size)
	if right.Last() {
		left.SetLast(true)
	} else {
		n := right.Next()
		n.SetSizePrev(size)
		al.touch(n)
	}
	al.touch(left)
}

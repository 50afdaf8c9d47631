package printer

import (
	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/verify"
)

const textHeader = "= Address =  Current  =  Prev  = Flags\n"

func (p *Printer) printText(msg string, a *arena.Arena) error {
	if err := p.writef("%s:\n", msg); err != nil {
		return err
	}
	if a == nil {
		if err := p.writef("Arena was not created\n"); err != nil {
			return err
		}
		return ErrArenaNotCreated
	}

	if err := p.writef(textHeader); err != nil {
		return err
	}
	for _, r := range rows(a) {
		if err := p.writef(" 0x%08X | %6d | %6d | %s\n", r.Offset, r.SizeCurr, r.SizePrev, r.flags()); err != nil {
			return err
		}
	}

	if p.opts.ShowSummary {
		s := verify.Summarize(a)
		_, err := p.num.Fprintf(p.writer,
			"%d blocks (%d busy, %d free): %d bytes busy, %d bytes free, largest free %d, fragmentation %.1f%%\n",
			s.Blocks, s.Busy, s.Free, s.BusyBytes, s.FreeBytes, s.LargestFree, s.Fragmentation()*100)
		return err
	}
	return nil
}

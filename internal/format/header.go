package format

import "fmt"

// Header is the decoded form of a block header. The arena stores the same
// fields in place; Header is a detached copy used for diagnostics and tests.
type Header struct {
	SizeCurr uint32
	SizePrev uint32
	Busy     bool
	First    bool
	Last     bool
}

// DecodeHeader reads the header at off.
func DecodeHeader(b []byte, off int) (Header, error) {
	if off < 0 || off+HeaderSize > len(b) {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	return Header{
		SizeCurr: ReadU32(b, off+SizeCurrOffset),
		SizePrev: ReadU32(b, off+SizePrevOffset),
		Busy:     ReadFlag(b, off+BusyOffset),
		First:    ReadFlag(b, off+FirstOffset),
		Last:     ReadFlag(b, off+LastOffset),
	}, nil
}

// EncodeHeader writes h at off, zeroing the reserved bytes.
func EncodeHeader(b []byte, off int, h Header) error {
	if off < 0 || off+HeaderSize > len(b) {
		return fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	PutU32(b, off+SizeCurrOffset, h.SizeCurr)
	PutU32(b, off+SizePrevOffset, h.SizePrev)
	PutFlag(b, off+BusyOffset, h.Busy)
	PutFlag(b, off+FirstOffset, h.First)
	PutFlag(b, off+LastOffset, h.Last)
	clear(b[off+LastOffset+1 : off+HeaderSize])
	return nil
}

// String renders the header the way the arena dump prints flags.
func (h Header) String() string {
	state := "free"
	if h.Busy {
		state = "busy"
	}
	s := fmt.Sprintf("curr=%d prev=%d %s", h.SizeCurr, h.SizePrev, state)
	if h.First {
		s += " first"
	}
	if h.Last {
		s += " last"
	}
	return s
}

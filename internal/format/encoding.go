package format

import "encoding/binary"

// Little-endian integer helpers.

// PutU32 writes v at off.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// ReadU32 reads the uint32 at off.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// PutFlag stores a boolean as a single byte at off.
func PutFlag(b []byte, off int, v bool) {
	if v {
		b[off] = flagSet
		return
	}
	b[off] = flagClear
}

// ReadFlag reports whether the byte at off is non-zero.
func ReadFlag(b []byte, off int) bool {
	return b[off] != flagClear
}

//go:build linux || freebsd

package dirty

import (
	"golang.org/x/sys/unix"
)

// flushRanges flushes individual touched ranges.
//
// On Linux and FreeBSD, msync() handles page-aligned sub-slices.
func (t *Tracker) flushRanges(data []byte) error {
	for _, r := range t.Ranges() {
		start := int(r.Off)
		end := min(int(r.Off+r.Len), len(data))
		if start >= end {
			continue
		}
		if err := unix.Msync(data[start:end], unix.MS_SYNC); err != nil {
			return err
		}
	}
	return nil
}

//go:build !linux && !darwin && !freebsd

package arena

// MmapSource falls back to the Go heap where anonymous mappings are not
// wired up.
type MmapSource struct {
	PageSize int
}

// Acquire returns a zeroed heap slice of size bytes.
func (s MmapSource) Acquire(size int) ([]byte, error) {
	return HeapSource{}.Acquire(size)
}

// Release is a no-op; the garbage collector reclaims the slice.
func (s MmapSource) Release(_ []byte) error {
	return nil
}

package arena

import "fmt"

// PageSource supplies the backing region for an arena. Acquire must return a
// zeroed region of exactly size bytes or an error.
type PageSource interface {
	Acquire(size int) ([]byte, error)
}

// Releaser is implemented by page sources that can take a region back.
type Releaser interface {
	Release(region []byte) error
}

// HeapSource allocates regions on the Go heap.
type HeapSource struct{}

// Acquire returns a zeroed slice of size bytes.
func (HeapSource) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("heap source: size %d: %w", size, ErrBadSize)
	}
	return make([]byte, size), nil
}

// FuncSource adapts a function to PageSource.
type FuncSource func(size int) ([]byte, error)

// Acquire calls f.
func (f FuncSource) Acquire(size int) ([]byte, error) {
	return f(size)
}

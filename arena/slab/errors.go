package slab

import "errors"

var (
	// ErrTooLarge indicates a request above Config.MaxObjectSize.
	ErrTooLarge = errors.New("slab: object size exceeds the maximum")

	// ErrBadSize indicates a zero or negative object size.
	ErrBadSize = errors.New("slab: object size must be positive")

	// ErrUnknownObject indicates a reference to no live slab, either never
	// allocated or dropped with an evicted slab.
	ErrUnknownObject = errors.New("slab: unknown object")

	// ErrBadConfig indicates an invalid Config.
	ErrBadConfig = errors.New("slab: invalid config")
)

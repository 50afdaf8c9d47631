package arena

import "errors"

var (
	// ErrShortRegion indicates a page source returned fewer bytes than requested.
	ErrShortRegion = errors.New("arena: page source returned a short region")

	// ErrBadSize indicates the requested arena size cannot hold even one header
	// or does not fit the 32-bit header fields.
	ErrBadSize = errors.New("arena: invalid arena size")

	// ErrReleased indicates the arena region was already handed back.
	ErrReleased = errors.New("arena: region released")
)

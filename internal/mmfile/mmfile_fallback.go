//go:build !unix

// Package mmfile maps files read-write into memory so an arena can live in a
// file and outlast the process.
package mmfile

import "errors"

// ErrNotSupported is returned where shared file mappings are unavailable.
var ErrNotSupported = errors.New("mmfile: shared file mappings not supported on this platform")

// Create is not supported on this platform.
func Create(path string, size int) ([]byte, func() error, error) {
	return nil, nil, ErrNotSupported
}

package arena

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/mmfile"
)

// FileSource backs each region with a shared mapping of the file at Path, so
// the arena contents land in the file. Every Acquire truncates the file.
//
// A FileSource serves one region at a time.
type FileSource struct {
	Path string

	region  []byte
	cleanup func() error
}

// Acquire truncates Path to size zero bytes and maps it.
func (s *FileSource) Acquire(size int) ([]byte, error) {
	if s.region != nil {
		return nil, fmt.Errorf("file source %s: region already mapped", s.Path)
	}
	data, cleanup, err := mmfile.Create(s.Path, size)
	if err != nil {
		return nil, fmt.Errorf("file source %s: %w", s.Path, err)
	}
	s.region, s.cleanup = data, cleanup
	return data, nil
}

// Release unmaps the region. The file keeps the last written contents.
func (s *FileSource) Release(_ []byte) error {
	if s.cleanup == nil {
		return nil
	}
	err := s.cleanup()
	s.region, s.cleanup = nil, nil
	return err
}

// Region returns the current mapping, or nil when none is mapped.
func (s *FileSource) Region() []byte { return s.region }

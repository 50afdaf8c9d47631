package slab

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/logger"
)

// Ref identifies an object: the slab that holds it and its byte offset in
// that slab. The zero Ref is never returned by Alloc.
type Ref struct {
	Slab   uint32
	Offset uint32
}

// Nil is the null object reference.
var Nil Ref

func (r Ref) String() string { return fmt.Sprintf("slab %d+0x%X", r.Slab, r.Offset) }

// slab is one region of same-sized objects.
type slab struct {
	id   uint32
	size int // object size
	used int // live objects
	next int // bump offset of the next unused object
	data []byte
}

func (s *slab) capacity() int { return len(s.data) / s.size }

func (s *slab) hasRoom() bool { return s.next+s.size <= len(s.data) }

// Stats holds cache counters.
type Stats struct {
	Allocs        int
	Frees         int
	SlabsCreated  int
	SlabsReleased int // released because they became empty
	Evictions     int // released to make room, live objects dropped
	ObjectsLost   int // live objects dropped by evictions
}

// Cache is the slab object cache.
type Cache struct {
	cfg    Config
	src    arena.PageSource
	slabs  []*slab // creation order
	nextID uint32
	stats  Stats
}

// New creates an empty cache. A nil src uses arena.HeapSource and a nil
// config uses DefaultConfig.
func New(src arena.PageSource, config *Config) (*Cache, error) {
	if config == nil {
		config = &DefaultConfig
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = arena.HeapSource{}
	}
	return &Cache{cfg: *config, src: src, nextID: 1}, nil
}

// Config returns the cache geometry.
func (c *Cache) Config() Config { return c.cfg }

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats { return c.stats }

// Len returns the number of slabs held.
func (c *Cache) Len() int { return len(c.slabs) }

// Alloc returns an object of exactly size bytes, from an existing slab of that
// object size when one has room, else from a new slab.
func (c *Cache) Alloc(size int) (Ref, error) {
	if size <= 0 {
		return Nil, ErrBadSize
	}
	if size > c.cfg.MaxObjectSize {
		logger.L.Debug("slab alloc rejected", "size", size, "max", c.cfg.MaxObjectSize)
		return Nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, size, c.cfg.MaxObjectSize)
	}

	for _, s := range c.slabs {
		if s.size == size && s.hasRoom() {
			return c.take(s), nil
		}
	}

	s, err := c.newSlab(size)
	if err != nil {
		return Nil, err
	}
	if len(c.slabs) < c.cfg.CacheSize {
		c.slabs = append(c.slabs, s)
	} else {
		i := c.victim()
		c.evict(i)
		c.slabs[i] = s
	}
	return c.take(s), nil
}

// Free releases an object. The slab goes back to the page source once its
// last object is freed.
func (c *Cache) Free(r Ref) error {
	i, s := c.find(r)
	if s == nil {
		logger.L.Debug("slab free of unknown object", "ref", r.String())
		return ErrUnknownObject
	}
	c.stats.Frees++
	s.used--
	if s.used > 0 {
		return nil
	}

	c.slabs = append(c.slabs[:i], c.slabs[i+1:]...)
	c.stats.SlabsReleased++
	return c.release(s)
}

// Realloc returns an object of at least size bytes holding the contents of r.
// Requests that fit the current object size return r. On error r is left
// untouched and still valid.
func (c *Cache) Realloc(r Ref, size int) (Ref, error) {
	_, s := c.find(r)
	if s == nil {
		return Nil, ErrUnknownObject
	}
	if size <= s.size {
		return r, nil
	}
	if size > c.cfg.MaxObjectSize {
		return r, fmt.Errorf("%w: %d > %d", ErrTooLarge, size, c.cfg.MaxObjectSize)
	}

	// The new slab may evict the one holding r.
	old := bytes.Clone(c.Bytes(r))
	nr, err := c.Alloc(size)
	if err != nil {
		return r, err
	}
	copy(c.Bytes(nr), old)
	if err := c.Free(r); err != nil && !errors.Is(err, ErrUnknownObject) {
		return nr, err
	}
	return nr, nil
}

// Bytes returns the object's memory, exactly its object size long, or nil for
// an unknown reference.
func (c *Cache) Bytes(r Ref) []byte {
	_, s := c.find(r)
	if s == nil {
		return nil
	}
	off := int(r.Offset)
	return s.data[off : off+s.size : off+s.size]
}

// Close releases every slab.
func (c *Cache) Close() error {
	var first error
	for _, s := range c.slabs {
		if err := c.release(s); err != nil && first == nil {
			first = err
		}
	}
	c.slabs = nil
	return first
}

func (c *Cache) take(s *slab) Ref {
	r := Ref{Slab: s.id, Offset: uint32(s.next)}
	s.next += s.size
	s.used++
	c.stats.Allocs++
	return r
}

func (c *Cache) newSlab(size int) (*slab, error) {
	n := c.cfg.SlabSize()
	data, err := c.src.Acquire(n)
	if err != nil {
		return nil, fmt.Errorf("slab: acquire %d bytes: %w", n, err)
	}
	if len(data) != n {
		if rel, ok := c.src.(arena.Releaser); ok {
			_ = rel.Release(data)
		}
		return nil, fmt.Errorf("slab: got %d of %d bytes: %w", len(data), n, arena.ErrShortRegion)
	}
	s := &slab{id: c.nextID, size: size, data: data}
	c.nextID++
	c.stats.SlabsCreated++
	logger.L.Debug("slab created", "id", s.id, "object_size", size, "capacity", s.capacity())
	return s, nil
}

// victim returns the index of the least used slab; ties go to the oldest.
func (c *Cache) victim() int {
	v := 0
	for i, s := range c.slabs {
		if s.used < c.slabs[v].used {
			v = i
		}
	}
	return v
}

func (c *Cache) evict(i int) {
	s := c.slabs[i]
	c.stats.Evictions++
	c.stats.ObjectsLost += s.used
	logger.L.Debug("slab evicted", "id", s.id, "object_size", s.size, "live", s.used)
	if err := c.release(s); err != nil {
		logger.L.Debug("slab release failed", "id", s.id, "err", err)
	}
}

func (c *Cache) release(s *slab) error {
	data := s.data
	s.data = nil
	if rel, ok := c.src.(arena.Releaser); ok {
		return rel.Release(data)
	}
	return nil
}

// find locates the slab holding r.
func (c *Cache) find(r Ref) (int, *slab) {
	for i, s := range c.slabs {
		if s.id != r.Slab {
			continue
		}
		off := int(r.Offset)
		if off%s.size != 0 || off+s.size > s.next {
			return -1, nil
		}
		return i, s
	}
	return -1, nil
}

package slab

import (
	"fmt"
	"io"
)

// Status classifies a slab by occupancy.
type Status uint8

const (
	StatusEmpty Status = iota
	StatusPartial
	StatusFull
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusPartial:
		return "partial"
	case StatusFull:
		return "full"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// MarshalText renders the status name in JSON output.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// SlabInfo describes one slab.
type SlabInfo struct {
	ID         uint32 `json:"id"`
	ObjectSize int    `json:"object_size"`
	Used       int    `json:"used"`
	Capacity   int    `json:"capacity"`
	Status     Status `json:"status"`
}

// Info lists the slabs in cache order.
func (c *Cache) Info() []SlabInfo {
	out := make([]SlabInfo, 0, len(c.slabs))
	for _, s := range c.slabs {
		info := SlabInfo{ID: s.id, ObjectSize: s.size, Used: s.used, Capacity: s.capacity()}
		switch {
		case s.used == 0:
			info.Status = StatusEmpty
		case s.used >= info.Capacity:
			info.Status = StatusFull
		default:
			info.Status = StatusPartial
		}
		out = append(out, info)
	}
	return out
}

// Show writes msg followed by one block per slab.
func (c *Cache) Show(w io.Writer, msg string) error {
	if _, err := fmt.Fprintln(w, msg); err != nil {
		return err
	}
	for i, info := range c.Info() {
		_, err := fmt.Fprintf(w, "\nSlab %d (id %d)\n   Object size:\t%d Byte\n   Used:\t%d/%d\n   Status:\t%s\n\n",
			i+1, info.ID, info.ObjectSize, info.Used, info.Capacity, info.Status)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	return err
}

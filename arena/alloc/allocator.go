package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/dirty"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
)

// Ptr is a payload address: the byte offset of the payload from the arena
// base. A header always precedes a payload, so no payload starts at 0.
type Ptr uint32

// Nil is the null payload pointer.
const Nil Ptr = 0

// state is the arena lifecycle as seen by the allocator.
type state uint8

const (
	stateAbsent state = iota // not created yet, or last attempt failed
	stateReady               // arena exists
	stateFailed              // page source failed with StickyFailure set
	stateClosed              // arena released
)

// Allocator serves Alloc, Free and Realloc from one arena.
type Allocator struct {
	cfg   Config
	src   arena.PageSource
	dt    dirty.DirtyTracker // nil when not tracking
	a     *arena.Arena
	state state
	err   error // last bootstrap failure
	stats Stats
}

// New creates an allocator. The arena itself is created lazily.
//
// Parameters:
//   - src: page source for the arena (nil for arena.HeapSource)
//   - dt: tracker notified of every header write (can be nil)
//   - config: arena geometry (nil for DefaultConfig)
func New(src arena.PageSource, dt dirty.DirtyTracker, config *Config) (*Allocator, error) {
	if config == nil {
		config = &DefaultConfig
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = arena.HeapSource{}
	}
	return &Allocator{cfg: *config, src: src, dt: dt}, nil
}

// Config returns the geometry the allocator was created with.
func (al *Allocator) Config() Config { return al.cfg }

// Init creates the arena if it does not exist yet. It is called implicitly by
// the first Alloc. Once the arena exists, Init does nothing.
func (al *Allocator) Init() error {
	switch al.state {
	case stateReady:
		return nil
	case stateClosed:
		return ErrClosed
	case stateFailed:
		return fmt.Errorf("alloc: arena unavailable: %w", al.err)
	}

	al.stats.Bootstraps++
	size := al.cfg.ArenaSize()
	a, err := arena.New(al.src, size)
	if err != nil {
		al.err = err
		if al.cfg.StickyFailure {
			al.state = stateFailed
		}
		logger.L.Debug("arena bootstrap failed", "size", size, "sticky", al.cfg.StickyFailure, "err", err)
		return err
	}
	al.a = a
	al.state = stateReady
	al.err = nil
	al.touch(a.First())
	logger.L.Debug("arena created", "size", size, "max_payload", a.MaxPayload())
	return nil
}

// Created reports whether the arena exists.
func (al *Allocator) Created() bool { return al.state == stateReady }

// Arena returns the managed arena, or nil when it has not been created.
func (al *Allocator) Arena() *arena.Arena {
	if al.state != stateReady {
		return nil
	}
	return al.a
}

// Stats returns a snapshot of the allocator counters.
func (al *Allocator) Stats() Stats { return al.stats }

// Alloc returns a payload of at least size bytes.
func (al *Allocator) Alloc(size int) (Ptr, error) {
	al.stats.AllocCalls++

	if err := al.Init(); err != nil {
		al.stats.FailPageSource++
		return Nil, ErrNoMemory
	}
	if size < 0 || size > al.a.MaxPayload() {
		al.stats.FailTooLarge++
		logger.L.Debug("alloc rejected", "size", size, "max_payload", al.a.MaxPayload())
		return Nil, ErrNoMemory
	}

	need := format.Round(size, al.cfg.Granularity)

	// First fit in address order; the last flag bounds the scan.
	for b := al.a.First(); ; b = b.Next() {
		if !b.Busy() && b.SizeCurr() >= need {
			al.split(b, need)
			return Ptr(b.Payload()), nil
		}
		if b.Last() {
			break
		}
	}

	al.stats.FailNoFit++
	logger.L.Debug("alloc found no fit", "size", size, "need", need)
	return Nil, ErrNoMemory
}

// Free releases a payload returned by Alloc or Realloc. Free(Nil) does nothing.
func (al *Allocator) Free(p Ptr) {
	if p == Nil || al.state != stateReady {
		return
	}
	al.stats.FreeCalls++

	b := al.block(p)
	b.SetBusy(false)
	al.touch(b)

	// Right first: a right merge changes b's size, which is what the left
	// neighbour must absorb.
	if !b.Last() {
		if r := b.Next(); !r.Busy() {
			al.stats.CoalesceForward++
			al.merge(b, r)
		}
	}
	if !b.First() {
		if l := b.Prev(); !l.Busy() {
			al.stats.CoalesceBackward++
			al.merge(l, b)
		}
	}
}

// Realloc resizes a payload, keeping its leading bytes. On failure the
// original payload is left intact and still owned by the caller.
func (al *Allocator) Realloc(p Ptr, size int) (Ptr, error) {
	if p == Nil {
		return al.Alloc(size)
	}
	al.stats.ReallocCalls++
	if al.state != stateReady {
		al.stats.FailPageSource++
		return Nil, ErrNoMemory
	}
	if size < 0 || size > al.a.MaxPayload() {
		al.stats.FailTooLarge++
		return Nil, ErrNoMemory
	}

	b := al.block(p)
	cur := b.SizeCurr()
	if size <= cur {
		// Shrinks never give the tail back.
		al.stats.ShrinkNoop++
		return p, nil
	}

	need := format.Round(size, al.cfg.Granularity)
	if !b.Last() {
		if r := b.Next(); !r.Busy() && r.SizeCurr() >= need-cur {
			al.stats.GrowInPlace++
			al.merge(b, r)
			al.split(b, need)
			return p, nil
		}
	}

	np, err := al.Alloc(size)
	if err != nil {
		return Nil, err
	}
	copy(al.Bytes(np), b.Bytes())
	al.Free(p)
	al.stats.Moves++
	return np, nil
}

// Bytes returns the payload of p, exactly Size(p) bytes long.
func (al *Allocator) Bytes(p Ptr) []byte {
	if p == Nil || al.state != stateReady {
		return nil
	}
	return al.block(p).Bytes()
}

// Size returns the usable payload size of p.
func (al *Allocator) Size(p Ptr) int {
	if p == Nil || al.state != stateReady {
		return 0
	}
	return al.block(p).SizeCurr()
}

// Close hands the arena back to the page source. The allocator cannot be
// used afterwards.
func (al *Allocator) Close() error {
	if al.state == stateClosed {
		return nil
	}
	var err error
	if al.a != nil {
		err = al.a.Release()
		al.a = nil
	}
	al.state = stateClosed
	return err
}

func (al *Allocator) block(p Ptr) arena.Block {
	return al.a.BlockOfPayload(int(p))
}

func (al *Allocator) touch(b arena.Block) {
	if al.dt != nil {
		al.dt.Add(b.Offset(), format.HeaderSize)
	}
}

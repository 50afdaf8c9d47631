// Package stress drives an allocator with a random mix of Alloc, Free and
// Realloc, filling every payload with random bytes and checking both the
// contents and the block chain as it goes.
package stress

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"math/rand/v2"

	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/arena/verify"
	"github.com/joshuapare/heapkit/internal/logger"
)

// ErrCorrupt indicates a payload no longer holds the bytes written to it.
var ErrCorrupt = errors.New("stress: payload corrupted")

// Config controls a run.
type Config struct {
	Ops         int    // operations to perform
	MaxSize     int    // largest request; 0 means a quarter of the arena payload
	Seed        uint64 // random seed, runs are reproducible per seed
	VerifyEvery int    // chain check interval in operations; 0 means every operation
	Drain       bool   // free everything at the end and expect a single free block
}

// DefaultConfig is a short run with chain checks after every operation.
var DefaultConfig = Config{Ops: 10000, Seed: 1}

// Report summarizes a run.
type Report struct {
	Ops      int
	Allocs   int
	Frees    int
	Reallocs int
	Failed   int // requests that returned ErrNoMemory
	Checked  int // payload checksum comparisons
	MaxLive  int // peak number of live payloads
	Live     int // live payloads at the end
	Verified int // chain checks run
}

type entry struct {
	p   alloc.Ptr
	n   int
	sum uint32
}

type runner struct {
	al   *alloc.Allocator
	cfg  Config
	rng  *rand.Rand
	live []entry
	rep  Report
}

// Run executes cfg.Ops operations against al. It stops at the first content
// or chain violation, or when ctx is done.
func Run(ctx context.Context, al *alloc.Allocator, cfg Config) (Report, error) {
	if cfg.Ops < 0 {
		return Report{}, fmt.Errorf("stress: negative op count %d", cfg.Ops)
	}
	if err := al.Init(); err != nil {
		return Report{}, fmt.Errorf("stress: %w", err)
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = al.Config().MaxPayload() / 4
	}
	if cfg.VerifyEvery <= 0 {
		cfg.VerifyEvery = 1
	}

	r := &runner{
		al:  al,
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed>>1^0x6a09e667f3bcc908)),
	}
	logger.L.Debug("stress run", "ops", cfg.Ops, "max_size", cfg.MaxSize, "seed", cfg.Seed)

	for i := range cfg.Ops {
		if err := ctx.Err(); err != nil {
			return r.report(), err
		}
		if err := r.step(); err != nil {
			return r.report(), fmt.Errorf("stress: op %d: %w", i, err)
		}
		r.rep.Ops++
		if (i+1)%cfg.VerifyEvery == 0 {
			if err := r.verify(); err != nil {
				return r.report(), fmt.Errorf("stress: op %d: %w", i, err)
			}
		}
	}

	if cfg.Drain {
		if err := r.drain(); err != nil {
			return r.report(), err
		}
	}
	return r.report(), nil
}

func (r *runner) report() Report {
	r.rep.Live = len(r.live)
	return r.rep
}

func (r *runner) step() error {
	switch v := r.rng.IntN(3); {
	case v == 0 || len(r.live) == 0:
		return r.alloc()
	case v == 1:
		return r.free(r.rng.IntN(len(r.live)))
	default:
		return r.realloc(r.rng.IntN(len(r.live)))
	}
}

func (r *runner) alloc() error {
	r.rep.Allocs++
	n := r.rng.IntN(r.cfg.MaxSize + 1)
	p, err := r.al.Alloc(n)
	if err != nil {
		return r.failed(err)
	}
	r.live = append(r.live, entry{p: p, n: n, sum: r.fill(r.al.Bytes(p)[:n])})
	r.rep.MaxLive = max(r.rep.MaxLive, len(r.live))
	return nil
}

func (r *runner) free(i int) error {
	r.rep.Frees++
	if err := r.check(r.live[i]); err != nil {
		return err
	}
	r.al.Free(r.live[i].p)
	r.live[i] = r.live[len(r.live)-1]
	r.live = r.live[:len(r.live)-1]
	return nil
}

func (r *runner) realloc(i int) error {
	r.rep.Reallocs++
	e := r.live[i]
	n := r.rng.IntN(r.cfg.MaxSize + 1)
	p, err := r.al.Realloc(e.p, n)
	if err != nil {
		if err := r.failed(err); err != nil {
			return err
		}
		// The old payload must have survived the failure.
		return r.check(e)
	}

	e.p = p
	if n < e.n {
		e.n = n
		e.sum = crc32.ChecksumIEEE(r.al.Bytes(p)[:n])
	}
	if err := r.check(e); err != nil {
		return err
	}
	// Refill so the next check covers the whole request.
	e.n = n
	e.sum = r.fill(r.al.Bytes(p)[:n])
	r.live[i] = e
	return nil
}

func (r *runner) failed(err error) error {
	if !errors.Is(err, alloc.ErrNoMemory) {
		return err
	}
	r.rep.Failed++
	return nil
}

func (r *runner) check(e entry) error {
	r.rep.Checked++
	b := r.al.Bytes(e.p)
	if len(b) < e.n {
		return fmt.Errorf("%w: ptr %d holds %d bytes, want %d", ErrCorrupt, e.p, len(b), e.n)
	}
	if got := crc32.ChecksumIEEE(b[:e.n]); got != e.sum {
		return fmt.Errorf("%w: ptr %d checksum %08x, want %08x", ErrCorrupt, e.p, got, e.sum)
	}
	return nil
}

func (r *runner) verify() error {
	r.rep.Verified++
	return verify.All(r.al.Arena(), r.al.Config().Granularity)
}

func (r *runner) fill(b []byte) uint32 {
	for i := range b {
		b[i] = byte(r.rng.Uint32())
	}
	return crc32.ChecksumIEEE(b)
}

func (r *runner) drain() error {
	for len(r.live) > 0 {
		if err := r.free(len(r.live) - 1); err != nil {
			return err
		}
	}
	if err := r.verify(); err != nil {
		return err
	}
	if s := verify.Summarize(r.al.Arena()); s.Blocks != 1 || s.Busy != 0 {
		return fmt.Errorf("stress: drained arena has %d blocks, %d busy", s.Blocks, s.Busy)
	}
	return nil
}

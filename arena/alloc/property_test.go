package alloc

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type live struct {
	p    Ptr
	n    int
	seed byte
}

// TestRandomOps drives a random mix of Alloc, Free and Realloc and checks the
// chain invariants plus payload contents after every step.
func TestRandomOps(t *testing.T) {
	for _, cfg := range []Config{pageConfig, smallConfig, DefaultConfig} {
		t.Run("", func(t *testing.T) {
			randomOps(t, cfg, 2000, 42)
		})
	}
}

func randomOps(t *testing.T, cfg Config, ops int, seed uint64) {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	al := newTestAllocator(t, cfg)
	limit := cfg.MaxPayload() / 4
	var blocks []live

	check := func(b live) {
		got := al.Bytes(b.p)
		require.GreaterOrEqual(t, len(got), b.n)
		for i := range b.n {
			if got[i] != b.seed+byte(i) {
				require.Failf(t, "payload corrupted", "ptr %d byte %d", b.p, i)
			}
		}
	}

	for i := range ops {
		switch op := rng.IntN(10); {
		case op < 5 || len(blocks) == 0:
			n := rng.IntN(limit + 1)
			p, err := al.Alloc(n)
			if err != nil {
				require.ErrorIs(t, err, ErrNoMemory)
				break
			}
			require.GreaterOrEqual(t, al.Size(p), n)
			b := live{p: p, n: n, seed: byte(i)}
			fill(al.Bytes(p)[:n], b.seed)
			blocks = append(blocks, b)
		case op < 8:
			j := rng.IntN(len(blocks))
			check(blocks[j])
			al.Free(blocks[j].p)
			blocks = append(blocks[:j], blocks[j+1:]...)
		default:
			j := rng.IntN(len(blocks))
			b := blocks[j]
			n := rng.IntN(limit + 1)
			q, err := al.Realloc(b.p, n)
			if err != nil {
				require.ErrorIs(t, err, ErrNoMemory)
				check(b)
				break
			}
			b.p = q
			b.n = min(b.n, n)
			check(b)
			blocks[j] = b
		}
		assertInvariants(t, al)
	}

	for _, b := range blocks {
		check(b)
		al.Free(b.p)
	}
	hs := headers(t, al)
	require.Len(t, hs, 1, "freeing everything leaves a single block")
	assert.Equal(t, first(last(free(uint32(cfg.MaxPayload()), 0))), hs[0])
}

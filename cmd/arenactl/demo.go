package main

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/arena/dirty"
	"github.com/joshuapare/heapkit/arena/printer"
)

var (
	demoTouched bool
	demoSummary bool
	demoSeed    uint64
	demoFile    string
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().BoolVar(&demoTouched, "touched", false, "Report the pages whose headers each step wrote (text output only)")
	cmd.Flags().BoolVar(&demoSummary, "summary", false, "Print block and byte totals after each dump")
	cmd.Flags().Uint64Var(&demoSeed, "seed", 1, "Seed for the random payload fill")
	cmd.Flags().StringVar(&demoFile, "file", "", "Back the arena with this file and sync touched pages after each step")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Replay the reference allocation scenario",
		Long: `The demo command replays a fixed sequence of allocations, reallocations
and frees against a fresh arena, dumping every block after each step. Requests
that cannot be served are reported and leave the arena unchanged.

Example:
  arenactl demo
  arenactl demo --touched
  arenactl demo --pages 4 --json
  arenactl demo --file arena.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

// demoStep is one operation of the scenario. slot names the pointer the step
// writes (alloc, realloc) or reads (free).
type demoStep struct {
	label string
	op    string
	slot  int
	size  int
}

const (
	opAlloc   = "alloc"
	opRealloc = "realloc"
	opFree    = "free"
)

// demoScript mirrors the reference scenario: an impossible request first, so
// the initial dump shows the freshly created arena.
var demoScript = []demoStep{
	{label: "Initial", op: opAlloc, slot: 0, size: math.MaxInt},
	{label: "alloc(1)", op: opAlloc, slot: 1, size: 1},
	{label: "alloc(200)", op: opAlloc, slot: 2, size: 200},
	{label: "alloc(70)", op: opAlloc, slot: 3, size: 70},
	{label: "alloc(10000)", op: opAlloc, slot: 4, size: 10000},
	{label: "alloc(max-1)", op: opAlloc, slot: 5, size: math.MaxInt - 1},
	{label: "realloc(ptr2, 400)", op: opRealloc, slot: 2, size: 400},
	{label: "realloc(ptr4, 40000)", op: opRealloc, slot: 4, size: 40000},
	{label: "free(ptr2)", op: opFree, slot: 2},
	{label: "free(ptr4)", op: opFree, slot: 4},
	{label: "free(ptr1)", op: opFree, slot: 1},
	{label: "free(ptr3)", op: opFree, slot: 3},
}

func runDemo() error {
	var (
		tracker *dirty.Tracker
		dt      dirty.DirtyTracker
		src     arena.PageSource
		file    *arena.FileSource
	)
	switch {
	case demoFile != "":
		// msync needs ranges aligned to OS pages.
		file = &arena.FileSource{Path: demoFile}
		src = file
		tracker = dirty.NewTracker(os.Getpagesize())
		dt = tracker
	case demoTouched:
		tracker = dirty.NewTracker(pageSize)
		dt = tracker
	}
	al, err := newAllocator(src, dt)
	if err != nil {
		return err
	}
	defer al.Close()

	opts := printer.DefaultOptions()
	opts.ShowSummary = demoSummary
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	p := printer.New(stdout(), opts)
	rng := rand.New(rand.NewPCG(demoSeed, demoSeed))

	var ptrs [6]alloc.Ptr
	for i, step := range demoScript {
		if i > 0 && !jsonOut {
			printInfo("\n")
		}
		if err := runDemoStep(al, rng, &ptrs, step); err != nil {
			if jsonOut {
				printError("%s: %v\n", step.label, err)
			} else {
				printInfo("%s: %v\n", step.label, err)
			}
		}
		if err := p.Print(step.label, al.Arena()); err != nil && !errors.Is(err, printer.ErrArenaNotCreated) {
			return err
		}
		if tracker == nil {
			continue
		}
		if demoTouched && !jsonOut {
			printTouched(tracker)
		}
		if file != nil && file.Region() != nil {
			pages := tracker.Pages()
			if err := tracker.Flush(file.Region()); err != nil {
				return fmt.Errorf("failed to sync %s: %w", demoFile, err)
			}
			printVerbose("synced %d page(s) to %s\n", pages, demoFile)
		}
		tracker.Reset()
	}

	st := al.Stats()
	printVerbose("\n%d allocs, %d frees, %d reallocs, %d failed (%d too large, %d no fit)\n",
		st.AllocCalls, st.FreeCalls, st.ReallocCalls, st.Failures(), st.FailTooLarge, st.FailNoFit)
	return nil
}

func runDemoStep(al *alloc.Allocator, rng *rand.Rand, ptrs *[6]alloc.Ptr, step demoStep) error {
	switch step.op {
	case opAlloc:
		p, err := al.Alloc(step.size)
		if err != nil {
			return err
		}
		fillRandom(rng, al.Bytes(p))
		ptrs[step.slot] = p
	case opRealloc:
		p, err := al.Realloc(ptrs[step.slot], step.size)
		if err != nil {
			return fmt.Errorf("failed to reallocate memory for ptr%d: %w", step.slot, err)
		}
		ptrs[step.slot] = p
	case opFree:
		al.Free(ptrs[step.slot])
		ptrs[step.slot] = alloc.Nil
	default:
		return fmt.Errorf("unknown demo op %q", step.op)
	}
	return nil
}

func fillRandom(rng *rand.Rand, b []byte) {
	for i := range b {
		b[i] = byte(rng.Uint32())
	}
}

func printTouched(t *dirty.Tracker) {
	ranges := t.Ranges()
	printInfo("touched: %d page(s)", t.Pages())
	for _, r := range ranges {
		printInfo(" [0x%X+0x%X]", r.Off, r.Len)
	}
	printInfo("\n")
}

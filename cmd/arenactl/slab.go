package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/arena/slab"
)

var (
	slabPages     int
	slabCacheSize int
	slabMaxObject int
)

func init() {
	cmd := newSlabCmd()
	cmd.Flags().IntVar(&slabPages, "slab-pages", slab.DefaultConfig.SlabPages, "Pages per slab")
	cmd.Flags().IntVar(&slabCacheSize, "cache-size", slab.DefaultConfig.CacheSize, "Maximum slabs in the cache")
	cmd.Flags().IntVar(&slabMaxObject, "max-object", 0, "Largest object in bytes (0 = one slab)")
	rootCmd.AddCommand(cmd)
}

func newSlabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slab",
		Short: "Replay the slab cache scenario",
		Long: `The slab command replays a fixed scenario against the slab object cache:
a few small objects, a large one, a reallocation, frees, and finally enough
objects to overflow the cache so the least used slabs are evicted.

Example:
  arenactl slab
  arenactl slab --cache-size 4 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlab()
		},
	}
	return cmd
}

type slabSnapshot struct {
	Message string          `json:"message"`
	Slabs   []slab.SlabInfo `json:"slabs"`
}

func runSlab() error {
	cfg := slab.Config{
		PageSize:      pageSize,
		SlabPages:     slabPages,
		CacheSize:     slabCacheSize,
		MaxObjectSize: slabMaxObject,
	}
	if cfg.MaxObjectSize <= 0 {
		cfg.MaxObjectSize = cfg.SlabSize()
	}
	c, err := slab.New(pageSource(), &cfg)
	if err != nil {
		return fmt.Errorf("failed to create slab cache: %w", err)
	}
	defer c.Close()

	var snaps []slabSnapshot
	show := func(msg string) error {
		if jsonOut {
			snaps = append(snaps, slabSnapshot{Message: msg, Slabs: c.Info()})
			return nil
		}
		return c.Show(stdout(), msg)
	}
	report := func(what string, err error) {
		if err != nil {
			printError("%s: %v\n", what, err)
		}
	}

	obj1, err := c.Alloc(4)
	report("alloc obj1", err)
	obj2, err := c.Alloc(4)
	report("alloc obj2", err)
	_, err = c.Alloc(666)
	report("alloc obj3", err)
	if err := show("Memory state after creating obj1-3:"); err != nil {
		return err
	}

	_, err = c.Alloc(9999)
	report("alloc obj4", err)
	if err := show("Memory state after creating obj4:"); err != nil {
		return err
	}

	obj2, err = c.Realloc(obj2, 100)
	report("realloc obj2", err)
	if err := show("Memory state after reallocation of obj2:"); err != nil {
		return err
	}

	report("free obj1", c.Free(obj1))
	if err := show("Memory state after free obj1:"); err != nil {
		return err
	}
	report("free obj2", c.Free(obj2))
	if err := show("Memory state after free obj2:"); err != nil {
		return err
	}

	// Enough page-sized objects to need several times the cache.
	n := cfg.SlabPages * 15 * 4
	for range n {
		if _, err := c.Alloc(4024); err != nil {
			report("fill", err)
			break
		}
	}
	if err := show("Full memory use:"); err != nil {
		return err
	}

	_, err = c.Alloc(4)
	report("alloc obj5", err)
	if err := show("Full memory use and add 1 new object:"); err != nil {
		return err
	}

	st := c.Stats()
	printVerbose("%d slabs created, %d released, %d evicted, %d objects dropped by eviction\n",
		st.SlabsCreated, st.SlabsReleased, st.Evictions, st.ObjectsLost)

	if jsonOut {
		return printJSON(snaps)
	}
	return nil
}

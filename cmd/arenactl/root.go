package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/arena/alloc"
	"github.com/joshuapare/heapkit/arena/dirty"
	"github.com/joshuapare/heapkit/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool

	// Arena geometry
	arenaPages  int
	pageSize    int
	granularity int
	useMmap     bool
	sticky      bool
)

var rootCmd = &cobra.Command{
	Use:   "arenactl",
	Short: "Drive and inspect the heapkit arena allocator",
	Long: `arenactl runs the heapkit allocators over a single fixed-size arena.
It replays the reference allocation scenarios, dumping every block header
after each step, and runs randomized stress checks that verify payload
contents and the block chain invariants.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose && !quiet {
			logger.Init(logger.Options{Enabled: true, Level: slog.LevelDebug})
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	rootCmd.PersistentFlags().IntVar(&arenaPages, "pages", alloc.DefaultConfig.ArenaPages, "Arena size in pages")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", alloc.DefaultConfig.PageSize, "Page size in bytes")
	rootCmd.PersistentFlags().
		IntVar(&granularity, "granularity", alloc.DefaultConfig.Granularity, "Payload rounding in bytes")
	rootCmd.PersistentFlags().BoolVar(&useMmap, "mmap", false, "Back the arena with an anonymous mapping")
	rootCmd.PersistentFlags().
		BoolVar(&sticky, "sticky", false, "Treat the first page source failure as permanent")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// allocConfig builds the arena geometry from the global flags.
func allocConfig() alloc.Config {
	return alloc.Config{
		PageSize:      pageSize,
		ArenaPages:    arenaPages,
		Granularity:   granularity,
		StickyFailure: sticky,
	}
}

func pageSource() arena.PageSource {
	if useMmap {
		return arena.MmapSource{}
	}
	return arena.HeapSource{}
}

// newAllocator creates an allocator from the global flags. A nil src selects
// the source named by the flags; dt may be nil.
func newAllocator(src arena.PageSource, dt dirty.DirtyTracker) (*alloc.Allocator, error) {
	if src == nil {
		src = pageSource()
	}
	cfg := allocConfig()
	al, err := alloc.New(src, dt, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create allocator: %w", err)
	}
	printVerbose("Arena: %d pages of %d bytes, granularity %d\n", cfg.ArenaPages, cfg.PageSize, cfg.Granularity)
	return al, nil
}

// Helper functions for output

// stdout returns the writer for regular output, discarding it in quiet mode.
func stdout() io.Writer {
	if quiet {
		return io.Discard
	}
	return os.Stdout
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

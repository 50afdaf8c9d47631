package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/arena/printer"
	"github.com/joshuapare/heapkit/internal/stress"
)

var (
	stressOps         int
	stressMaxSize     int
	stressSeed        uint64
	stressVerifyEvery int
	stressDrain       bool
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressOps, "ops", stress.DefaultConfig.Ops, "Number of operations")
	cmd.Flags().IntVar(&stressMaxSize, "max-size", 0, "Largest request in bytes (0 = a quarter of the arena)")
	cmd.Flags().Uint64Var(&stressSeed, "seed", stress.DefaultConfig.Seed, "Random seed")
	cmd.Flags().IntVar(&stressVerifyEvery, "verify-every", 1, "Check the block chain every N operations")
	cmd.Flags().BoolVar(&stressDrain, "drain", true, "Free everything at the end and expect one free block")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a randomized allocation stress test",
		Long: `The stress command issues a random mix of alloc, free and realloc
requests, fills every payload with random bytes, and checks the contents
before each free and after each realloc. The block chain invariants are
verified as it goes.

Example:
  arenactl stress --ops 100000 --seed 42
  arenactl stress --pages 1 --max-size 4080 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd)
		},
	}
	return cmd
}

func runStress(cmd *cobra.Command) error {
	al, err := newAllocator(nil, nil)
	if err != nil {
		return err
	}
	defer al.Close()

	cfg := stress.Config{
		Ops:         stressOps,
		MaxSize:     stressMaxSize,
		Seed:        stressSeed,
		VerifyEvery: stressVerifyEvery,
		Drain:       stressDrain,
	}
	printVerbose("Running %d ops, seed %d\n", cfg.Ops, cfg.Seed)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rep, runErr := stress.Run(ctx, al, cfg)

	if jsonOut {
		if err := printJSON(struct {
			stress.Report
			Passed bool   `json:"passed"`
			Error  string `json:"error,omitempty"`
		}{rep, runErr == nil, errString(runErr)}); err != nil {
			return err
		}
		return runErr
	}

	printInfo("ops:       %d\n", rep.Ops)
	printInfo("allocs:    %d\n", rep.Allocs)
	printInfo("frees:     %d\n", rep.Frees)
	printInfo("reallocs:  %d\n", rep.Reallocs)
	printInfo("failed:    %d\n", rep.Failed)
	printInfo("checked:   %d\n", rep.Checked)
	printInfo("verified:  %d\n", rep.Verified)
	printInfo("peak live: %d\n", rep.MaxLive)
	if verbose && al.Arena() != nil {
		opts := printer.DefaultOptions()
		opts.ShowSummary = true
		if err := printer.New(stdout(), opts).Print("final", al.Arena()); err != nil {
			return err
		}
	}
	if runErr != nil {
		return fmt.Errorf("stress failed: %w", runErr)
	}
	printInfo("PASS\n")
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

package main

import (
	"testing"
)

func TestSlabCommand(t *testing.T) {
	resetFlags()

	output, err := captureOutput(t, runSlab)
	if err != nil {
		t.Fatalf("runSlab() error = %v", err)
	}

	assertContains(t, output, []string{
		"Memory state after creating obj1-3:\n",
		"Object size:\t4 Byte",
		"Object size:\t666 Byte",
		"Object size:\t9999 Byte",
		"Memory state after reallocation of obj2:\n",
		"Object size:\t100 Byte",
		"Full memory use:\n",
		"Used:\t4/4",
		"Status:\tfull",
		"~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~\n",
	})
}

func TestSlabCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	slabCacheSize = 4

	output, err := captureOutput(t, runSlab)
	if err != nil {
		t.Fatalf("runSlab() error = %v", err)
	}

	assertJSON(t, output)
	assertContains(t, output, []string{`"message": "Full memory use:"`, `"status": "full"`})
	assertNotContains(t, output, []string{"~~~~"})
}

func TestSlabCommand_BadConfig(t *testing.T) {
	resetFlags()
	slabPages = 0

	if _, err := captureOutput(t, runSlab); err == nil {
		t.Fatal("expected error for zero slab pages")
	}
}

// Package verify checks the structural invariants of an arena's block chain.
//
// These helpers are used by tests after every mutation, and by the stress
// harness and CLI to prove an allocation sequence left the arena sound:
//
//   - Chain: the walk from the first block ends at a block flagged last,
//     exactly at the region end, first flag only on the first block
//   - Coalesced: no two adjacent blocks are both free
//   - PrevSizes: every size_prev equals the predecessor's size_curr
//   - Coverage: the blocks plus their headers cover the region exactly
//   - Granularity: every size_curr is a multiple of the rounding unit
package verify

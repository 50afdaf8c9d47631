// Package printer renders arena dumps: one row per block with its offset,
// current and previous payload sizes and flags, in text or JSON.
//
// The walk is read-only and follows the header chain from the first block to
// the block marked last.
package printer

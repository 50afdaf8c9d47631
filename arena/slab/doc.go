// Package slab implements a small object cache on top of page-granularity
// regions. Each slab is one region from an arena.PageSource holding objects of
// a single size, handed out by bumping a pointer. The cache keeps at most
// CacheSize slabs; when a new slab is needed and the cache is full, the least
// used slab is evicted together with the objects still in it.
//
// A slab is released as soon as its last object is freed. Space freed inside a
// slab that still has live objects is not reused.
//
// Cache is not safe for concurrent use.
package slab

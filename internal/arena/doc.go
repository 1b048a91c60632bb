// Package arena provides the sparse element array backing every mesh element kind.
//
// An ElementArray hands out stable integer IDs. Removed slots leave holes that
// are reused lowest-first by later allocations, so deleting and recreating
// elements never grows storage. Holes are only reclaimed by an explicit
// Compact, which renumbers the live elements densely and returns the
// old-to-new index map the caller must apply to every cross-reference.
//
// # Concurrency
//
// ElementArray is not safe for concurrent use.
package arena

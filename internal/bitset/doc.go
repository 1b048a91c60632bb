// Package bitset provides a compact, growable bitset.
//
// Used internally for:
//   - Element validity tracking (which arena slots are allocated)
//   - Visited sets in topology walks
//
// The bitset is not safe for concurrent use; callers provide external
// synchronization, as the mesh description does.
package bitset

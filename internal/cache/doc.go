// Package cache provides a byte-bounded LRU cache for immutable payloads.
//
// Entries are whole blob contents keyed by blob name. A value larger than
// the capacity is never cached. Returned slices must be treated as
// read-only.
package cache

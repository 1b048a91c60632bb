// Package persistence provides the little-endian binary archive used to
// serialize mesh descriptions.
//
// An archive is a fixed FileHeader followed by a body written through a
// Writer and terminated by a CRC32 trailer over header and body. Writer and
// Reader carry a sticky error: after the first failure every further call is
// a no-op and Err reports the failure, so encoders can emit long sequences of
// fields and check once.
//
// Counts read back from an archive are bounds-checked against MaxCount so
// that a corrupt length prefix fails with ErrCorrupt instead of allocating
// unbounded memory.
package persistence

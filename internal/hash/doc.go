// Package hash provides the hashing utilities used by attribute columns and
// bulk payloads.
//
// # CRC32-Castagnoli (CRC32C)
//
// Attribute column hashes use CRC32C, which Go's crc32 package computes with
// hardware instructions where available (SSE4.2, ARM CRC).
//
//	checksum := hash.CRC32C(data)
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	checksum := h.Sum32()
//
// # Content digests
//
// Bulk payloads are identified by a SHA-1 Digest of their uncompressed bytes.
// Two payloads with equal digests are treated as the same content.
package hash

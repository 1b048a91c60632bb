package hash

import (
	"crypto/sha1" //nolint:gosec // content identity, not security
	"encoding/hex"
	"fmt"
	"hash"
)

// DigestSize is the size of a content digest in bytes.
const DigestSize = sha1.Size

// Digest is a SHA-1 content digest.
type Digest [DigestSize]byte

// Sum returns the digest of data.
func Sum(data []byte) Digest {
	return sha1.Sum(data) //nolint:gosec
}

// NewDigest returns a streaming hash whose Sum can be converted with DigestOf.
func NewDigest() hash.Hash {
	return sha1.New() //nolint:gosec
}

// DigestOf converts the Sum of a hash returned by NewDigest.
func DigestOf(h hash.Hash) Digest {
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Words returns the digest as five little-endian 32-bit words.
func (d Digest) Words() [5]uint32 {
	var w [5]uint32
	for i := range w {
		b := d[i*4:]
		w[i] = uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	}
	return w
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// ParseDigest parses a hex-encoded digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("hash: invalid digest %q: %w", s, err)
	}
	if len(b) != DigestSize {
		return d, fmt.Errorf("hash: invalid digest length %d", len(b))
	}
	copy(d[:], b)
	return d, nil
}

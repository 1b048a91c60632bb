package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRC32C(t *testing.T) {
	data := []byte("123456789")
	// Standard CRC32C check value.
	assert.Equal(t, uint32(0xE3069283), CRC32C(data))

	h := NewCRC32C()
	_, _ = h.Write(data[:4])
	_, _ = h.Write(data[4:])
	assert.Equal(t, CRC32C(data), h.Sum32())

	assert.Equal(t, CRC32C(data), UpdateCRC32C(UpdateCRC32C(0, data[:4]), data[4:]))
}

func TestDigest(t *testing.T) {
	d := Sum([]byte("abc"))
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", d.String())
	assert.False(t, d.IsZero())
	assert.True(t, Digest{}.IsZero())

	h := NewDigest()
	_, _ = h.Write([]byte("a"))
	_, _ = h.Write([]byte("bc"))
	assert.Equal(t, d, DigestOf(h))

	parsed, err := ParseDigest(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, parsed)

	_, err = ParseDigest("zz")
	require.Error(t, err)
	_, err = ParseDigest("abcd")
	require.Error(t, err)

	w := d.Words()
	assert.Equal(t, uint32(0x363e99a9), w[0])
}

package bitset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
)

// MaxReadSize bounds the size accepted by ReadFrom.
const MaxReadSize = 1 << 31

const readChunkWords = 1 << 12

// ErrTooLarge is returned by ReadFrom when the encoded size exceeds MaxReadSize.
var ErrTooLarge = errors.New("bitset: encoded size too large")

// BitSet is a growable bitset backed by uint64 words.
type BitSet struct {
	words []uint64
	size  uint64
}

// New creates a new BitSet with the given size (in bits).
func New(size uint64) *BitSet {
	return &BitSet{
		words: make([]uint64, wordsFor(size)),
		size:  size,
	}
}

func wordsFor(size uint64) uint64 {
	return (size + 63) / 64
}

// Set sets the bit at the given index. Out-of-range indices are ignored.
func (b *BitSet) Set(i uint64) {
	if i >= b.size {
		return
	}
	b.words[i>>6] |= 1 << (i & 63)
}

// TestAndSet sets the bit at the given index and returns true if it was ALREADY set.
func (b *BitSet) TestAndSet(i uint64) bool {
	if i >= b.size {
		return false
	}
	mask := uint64(1) << (i & 63)
	w := &b.words[i>>6]
	if *w&mask != 0 {
		return true
	}
	*w |= mask
	return false
}

// Unset clears the bit at the given index.
func (b *BitSet) Unset(i uint64) {
	if i >= b.size {
		return
	}
	b.words[i>>6] &^= 1 << (i & 63)
}

// Test returns true if the bit at the given index is set.
func (b *BitSet) Test(i uint64) bool {
	if i >= b.size {
		return false
	}
	return b.words[i>>6]&(1<<(i&63)) != 0
}

// NextSetBit returns the index of the next set bit starting from i (inclusive).
// The second result is false if no bit is set at or after i.
func (b *BitSet) NextSetBit(i uint64) (uint64, bool) {
	if i >= b.size {
		return 0, false
	}

	wordIdx := i >> 6
	val := b.words[wordIdx] &^ ((1 << (i & 63)) - 1)
	for {
		if val != 0 {
			idx := wordIdx<<6 + uint64(bits.TrailingZeros64(val))
			if idx >= b.size {
				return 0, false
			}
			return idx, true
		}
		wordIdx++
		if wordIdx >= uint64(len(b.words)) {
			return 0, false
		}
		val = b.words[wordIdx]
	}
}

// Grow ensures the bitset can hold at least size bits. It never shrinks.
func (b *BitSet) Grow(size uint64) {
	if size <= b.size {
		return
	}
	need := wordsFor(size)
	if need > uint64(len(b.words)) {
		if need <= uint64(cap(b.words)) {
			old := len(b.words)
			b.words = b.words[:need]
			clear(b.words[old:])
		} else {
			newCap := max(need, uint64(cap(b.words))*2)
			words := make([]uint64, need, newCap)
			copy(words, b.words)
			b.words = words
		}
	}
	b.size = size
}

// Truncate shrinks the bitset to size bits, dropping any bits beyond it.
func (b *BitSet) Truncate(size uint64) {
	if size >= b.size {
		return
	}
	n := wordsFor(size)
	clear(b.words[n:])
	b.words = b.words[:n]
	if rem := size & 63; rem != 0 {
		b.words[len(b.words)-1] &= (1 << rem) - 1
	}
	b.size = size
}

// Count returns the number of set bits.
func (b *BitSet) Count() int {
	count := 0
	for _, w := range b.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// ClearAll clears all bits in the bitset.
func (b *BitSet) ClearAll() {
	clear(b.words)
}

// Len returns the size of the bitset in bits.
func (b *BitSet) Len() uint64 {
	return b.size
}

// Clone returns a deep copy of the bitset.
func (b *BitSet) Clone() *BitSet {
	words := make([]uint64, len(b.words))
	copy(words, b.words)
	return &BitSet{words: words, size: b.size}
}

// WriteTo writes the bitset to the writer.
func (b *BitSet) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, b.size); err != nil {
		return 0, err
	}
	n := int64(8)
	if len(b.words) == 0 {
		return n, nil
	}
	if err := binary.Write(w, binary.LittleEndian, b.words); err != nil {
		return n, err
	}
	return n + int64(len(b.words))*8, nil
}

// ReadFrom reads the bitset from the reader, replacing its contents.
func (b *BitSet) ReadFrom(r io.Reader) (int64, error) {
	var size uint64
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return 0, err
	}
	n := int64(8)
	if size > MaxReadSize {
		return n, fmt.Errorf("%w: %d bits", ErrTooLarge, size)
	}
	// Read in chunks; memory grows only with the words actually present.
	total := wordsFor(size)
	words := make([]uint64, 0, min(total, readChunkWords))
	chunk := make([]uint64, readChunkWords)
	for remaining := total; remaining > 0; {
		c := chunk[:min(remaining, readChunkWords)]
		if err := binary.Read(r, binary.LittleEndian, c); err != nil {
			return n, err
		}
		words = append(words, c...)
		n += int64(len(c)) * 8
		remaining -= uint64(len(c))
	}
	b.words = words
	b.size = size
	return n, nil
}

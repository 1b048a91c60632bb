package attribute

import (
	"fmt"

	"github.com/hupe1980/meshdesc/core"
)

// column is the type-erased view of an ArraySet used by Set.
type column interface {
	Type() Type
	Flags() Flags
	setFlags(Flags)
	NumChannels() int
	NumElements() int

	Initialize(n int)
	Insert(index int)
	Remove(index int)
	Remap(remap core.IndexRemap)
	SetNumChannels(n int)
	InsertChannel(index int)
	RemoveChannel(index int)

	clone() column
}

// ArraySet is a typed attribute column: one slice of values per channel, all
// channels sized to the owning element array.
//
// Slots beyond the current element count never exist; Insert grows every
// channel with the default value. Removal only resets a slot to the default.
// The only operations that shrink a column are Initialize and Remap.
type ArraySet[T Value] struct {
	channels    [][]T
	def         T
	flags       Flags
	numElements int
}

// NewArraySet creates a column with the given channel count, default and flags,
// sized to numElements.
func NewArraySet[T Value](channels int, def T, flags Flags, numElements int) *ArraySet[T] {
	if channels < 1 {
		channels = 1
	}
	a := &ArraySet[T]{
		def:   def,
		flags: flags,
	}
	a.channels = make([][]T, channels)
	a.Initialize(numElements)
	return a
}

// Type returns the column's value type tag.
func (a *ArraySet[T]) Type() Type { return TypeOf[T]() }

// Flags returns the attribute flags.
func (a *ArraySet[T]) Flags() Flags { return a.flags }

func (a *ArraySet[T]) setFlags(f Flags) { a.flags = f }

// Default returns the default value new slots are filled with.
func (a *ArraySet[T]) Default() T { return a.def }

// NumChannels returns the channel count.
func (a *ArraySet[T]) NumChannels() int { return len(a.channels) }

// NumElements returns the number of slots in each channel.
func (a *ArraySet[T]) NumElements() int { return a.numElements }

func (a *ArraySet[T]) checkChannel(ch int) {
	if ch < 0 || ch >= len(a.channels) {
		panic(fmt.Sprintf("attribute: channel %d out of range [0,%d)", ch, len(a.channels)))
	}
}

// Get returns the value at index for channel ch.
func (a *ArraySet[T]) Get(index, ch int) T {
	a.checkChannel(ch)
	return a.channels[ch][index]
}

// Set stores v at index for channel ch.
func (a *ArraySet[T]) Set(index, ch int, v T) {
	a.checkChannel(ch)
	a.channels[ch][index] = v
}

// Channel returns the backing slice of channel ch. Writes through the slice
// are visible to the column; the slice is invalidated by any structural change.
func (a *ArraySet[T]) Channel(ch int) []T {
	a.checkChannel(ch)
	return a.channels[ch]
}

func (a *ArraySet[T]) filled(n int) []T {
	s := make([]T, n)
	var zero T
	if a.def != zero {
		for i := range s {
			s[i] = a.def
		}
	}
	return s
}

// Initialize resizes every channel to n slots, all holding the default.
func (a *ArraySet[T]) Initialize(n int) {
	for ch := range a.channels {
		a.channels[ch] = a.filled(n)
	}
	a.numElements = n
}

// Insert makes index addressable, growing every channel with defaults if
// needed, and resets the slot to the default.
func (a *ArraySet[T]) Insert(index int) {
	if index >= a.numElements {
		for ch, values := range a.channels {
			for len(values) <= index {
				values = append(values, a.def)
			}
			a.channels[ch] = values
		}
		a.numElements = index + 1
	}
	for _, values := range a.channels {
		values[index] = a.def
	}
}

// Remove resets the slot at index to the default.
func (a *ArraySet[T]) Remove(index int) {
	if index < 0 || index >= a.numElements {
		return
	}
	for _, values := range a.channels {
		values[index] = a.def
	}
}

// Remap rewrites every channel so that the value formerly at i is at
// remap[i]. Dropped slots are discarded; the column shrinks to the remap's
// new size.
func (a *ArraySet[T]) Remap(remap core.IndexRemap) {
	size := remap.NewSize()
	for ch, values := range a.channels {
		out := a.filled(size)
		for i, v := range values {
			if n := remap.Get(i); n >= 0 {
				out[n] = v
			}
		}
		a.channels[ch] = out
	}
	a.numElements = size
}

// SetNumChannels grows or shrinks the channel count. New channels are
// filled with the default.
func (a *ArraySet[T]) SetNumChannels(n int) {
	if n < 1 {
		panic(fmt.Sprintf("attribute: invalid channel count %d", n))
	}
	if n < len(a.channels) {
		clear(a.channels[n:])
		a.channels = a.channels[:n]
		return
	}
	for len(a.channels) < n {
		a.channels = append(a.channels, a.filled(a.numElements))
	}
}

// InsertChannel inserts a default-filled channel before index.
func (a *ArraySet[T]) InsertChannel(index int) {
	if index < 0 || index > len(a.channels) {
		panic(fmt.Sprintf("attribute: channel %d out of range [0,%d]", index, len(a.channels)))
	}
	a.channels = append(a.channels, nil)
	copy(a.channels[index+1:], a.channels[index:])
	a.channels[index] = a.filled(a.numElements)
}

// RemoveChannel removes the channel at index. The last channel cannot be removed.
func (a *ArraySet[T]) RemoveChannel(index int) {
	a.checkChannel(index)
	if len(a.channels) == 1 {
		panic("attribute: cannot remove the only channel")
	}
	a.channels = append(a.channels[:index], a.channels[index+1:]...)
}

func (a *ArraySet[T]) clone() column {
	c := &ArraySet[T]{
		def:         a.def,
		flags:       a.flags,
		numElements: a.numElements,
		channels:    make([][]T, len(a.channels)),
	}
	for ch, values := range a.channels {
		c.channels[ch] = append([]T(nil), values...)
	}
	return c
}

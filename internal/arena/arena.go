package arena

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/meshdesc/core"
	"github.com/hupe1980/meshdesc/internal/bitset"
)

var (
	// ErrOccupied is returned by Insert when the requested slot already holds an element.
	ErrOccupied = errors.New("arena: slot already occupied")
	// ErrInvalidID is returned when an ID is negative.
	ErrInvalidID = errors.New("arena: invalid id")
)

// ElementArray is a sparse array of elements of one kind.
//
// Slot i is live when the validity bit i is set. Free slots below the array
// size are tracked in a roaring bitmap so the lowest free slot is found in
// O(1).
type ElementArray[T any, ID core.ElementID] struct {
	elems []T
	valid *bitset.BitSet
	free  *roaring.Bitmap
}

// New creates an empty element array.
func New[T any, ID core.ElementID]() *ElementArray[T, ID] {
	return &ElementArray[T, ID]{
		valid: bitset.New(0),
		free:  roaring.New(),
	}
}

// Reserve grows the backing capacity so that n more elements can be added
// without reallocation.
func (a *ElementArray[T, ID]) Reserve(n int) {
	if n <= 0 {
		return
	}
	need := len(a.elems) + n - int(a.free.GetCardinality())
	if need <= cap(a.elems) {
		return
	}
	elems := make([]T, len(a.elems), need)
	copy(elems, a.elems)
	a.elems = elems
}

// Add allocates the lowest free slot, growing the array if there is none,
// and returns its ID. The element is zero-valued.
func (a *ElementArray[T, ID]) Add() ID {
	if !a.free.IsEmpty() {
		idx := a.free.Minimum()
		a.free.Remove(idx)
		a.valid.Set(uint64(idx))
		var zero T
		a.elems[idx] = zero
		return ID(idx)
	}

	idx := len(a.elems)
	var zero T
	a.elems = append(a.elems, zero)
	a.valid.Grow(uint64(len(a.elems)))
	a.valid.Set(uint64(idx))
	return ID(idx)
}

// Insert allocates the specific slot id. Slots skipped over when growing
// become free slots.
func (a *ElementArray[T, ID]) Insert(id ID) error {
	if id < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, id)
	}
	idx := int(id)
	if idx < len(a.elems) {
		if a.valid.Test(uint64(idx)) {
			return fmt.Errorf("%w: %d", ErrOccupied, id)
		}
		a.free.Remove(uint32(idx))
		a.valid.Set(uint64(idx))
		var zero T
		a.elems[idx] = zero
		return nil
	}

	if idx > len(a.elems) {
		a.free.AddRange(uint64(len(a.elems)), uint64(idx))
	}
	var zero T
	for len(a.elems) <= idx {
		a.elems = append(a.elems, zero)
	}
	a.valid.Grow(uint64(len(a.elems)))
	a.valid.Set(uint64(idx))
	return nil
}

// Remove frees the slot id. Backing storage is not shrunk. Removing a slot
// that is not live is a no-op and reports false.
func (a *ElementArray[T, ID]) Remove(id ID) bool {
	if !a.IsValid(id) {
		return false
	}
	idx := int(id)
	a.valid.Unset(uint64(idx))
	a.free.Add(uint32(idx))
	var zero T
	a.elems[idx] = zero
	return true
}

// IsValid reports whether id refers to a live element.
func (a *ElementArray[T, ID]) IsValid(id ID) bool {
	return id >= 0 && int(id) < len(a.elems) && a.valid.Test(uint64(id))
}

// Get returns a pointer to the element at id, or nil if id is not live.
// The pointer is invalidated by the next Add, Insert or Compact.
func (a *ElementArray[T, ID]) Get(id ID) *T {
	if !a.IsValid(id) {
		return nil
	}
	return &a.elems[id]
}

// Len returns the number of live elements.
func (a *ElementArray[T, ID]) Len() int {
	return len(a.elems) - int(a.free.GetCardinality())
}

// ArraySize returns the number of slots including holes. Attribute columns
// are sized to this value.
func (a *ElementArray[T, ID]) ArraySize() int {
	return len(a.elems)
}

// FirstValid returns the first live ID, or the invalid ID when empty.
func (a *ElementArray[T, ID]) FirstValid() ID {
	idx, ok := a.valid.NextSetBit(0)
	if !ok {
		return core.Invalid[ID]()
	}
	return ID(idx)
}

// All iterates over live elements in ID order.
func (a *ElementArray[T, ID]) All() iter.Seq2[ID, *T] {
	return func(yield func(ID, *T) bool) {
		for i := uint64(0); ; i++ {
			next, ok := a.valid.NextSetBit(i)
			if !ok {
				return
			}
			if !yield(ID(next), &a.elems[next]) {
				return
			}
			i = next
		}
	}
}

// IDs returns the live IDs in ascending order.
func (a *ElementArray[T, ID]) IDs() []ID {
	ids := make([]ID, 0, a.Len())
	for id := range a.All() {
		ids = append(ids, id)
	}
	return ids
}

// Reset removes every element and releases storage.
func (a *ElementArray[T, ID]) Reset() {
	a.elems = nil
	a.valid = bitset.New(0)
	a.free.Clear()
}

// Compact renumbers the live elements densely in ID order, drops every hole
// and returns the old-to-new index map.
func (a *ElementArray[T, ID]) Compact() core.IndexRemap {
	remap := make(core.IndexRemap, len(a.elems))
	next := 0
	for i := range a.elems {
		if !a.valid.Test(uint64(i)) {
			remap[i] = -1
			continue
		}
		remap[i] = int32(next)
		if next != i {
			a.elems[next] = a.elems[i]
		}
		next++
	}

	var zero T
	for i := next; i < len(a.elems); i++ {
		a.elems[i] = zero
	}
	a.elems = a.elems[:next]

	a.valid.Truncate(uint64(next))
	for i := range next {
		a.valid.Set(uint64(i))
	}
	a.free.Clear()
	return remap
}

// Remap moves every live element to the slot given by remap. Elements mapped
// to -1 are dropped. The resulting array is sized to remap.NewSize(); slots
// that receive no element become free.
func (a *ElementArray[T, ID]) Remap(remap core.IndexRemap) {
	size := remap.NewSize()
	elems := make([]T, size)
	valid := bitset.New(uint64(size))
	for i := range a.elems {
		if !a.valid.Test(uint64(i)) {
			continue
		}
		n := remap.Get(i)
		if n < 0 {
			continue
		}
		elems[n] = a.elems[i]
		valid.Set(uint64(n))
	}

	a.elems = elems
	a.valid = valid
	a.free.Clear()
	for i := range size {
		if !valid.Test(uint64(i)) {
			a.free.Add(uint32(i))
		}
	}
}

// WriteValidity writes the slot validity map. Together with the live
// elements written by the caller it reproduces the array including holes.
func (a *ElementArray[T, ID]) WriteValidity(w io.Writer) error {
	_, err := a.valid.WriteTo(w)
	return err
}

// ReadValidity replaces the array with zero-valued elements laid out
// according to a validity map written by WriteValidity.
func (a *ElementArray[T, ID]) ReadValidity(r io.Reader) error {
	valid := bitset.New(0)
	if _, err := valid.ReadFrom(r); err != nil {
		return err
	}
	size := int(valid.Len())
	a.elems = make([]T, size)
	a.valid = valid
	a.free.Clear()
	for i := range size {
		if !valid.Test(uint64(i)) {
			a.free.Add(uint32(i))
		}
	}
	return nil
}

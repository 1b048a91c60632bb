package core

// IndexRemap maps old element indices to new ones.
//
// Entry i holds the new index of the element formerly at index i, or -1 if
// the slot was free and has been dropped.
type IndexRemap []int32

// IdentityRemap returns a remap of n slots that maps every index onto itself.
func IdentityRemap(n int) IndexRemap {
	r := make(IndexRemap, n)
	for i := range r {
		r[i] = int32(i)
	}
	return r
}

// Get returns the new index for old, or -1 if old was dropped or is out of range.
func (r IndexRemap) Get(old int) int32 {
	if old < 0 || old >= len(r) {
		return -1
	}
	return r[old]
}

// IsIdentity reports whether every mapped index maps onto itself and no slot is dropped.
func (r IndexRemap) IsIdentity() bool {
	for i, n := range r {
		if int32(i) != n {
			return false
		}
	}
	return true
}

// NewSize returns the number of slots after applying the remap.
func (r IndexRemap) NewSize() int {
	size := 0
	for _, n := range r {
		if int(n)+1 > size {
			size = int(n) + 1
		}
	}
	return size
}

// Remapped applies r to id. Invalid IDs stay invalid; IDs without a mapping
// (an empty remap means "unchanged") are returned as-is.
func Remapped[ID ElementID](r IndexRemap, id ID) ID {
	if id < 0 || r == nil {
		return id
	}
	return ID(r.Get(int(id)))
}

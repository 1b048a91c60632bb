package attribute

import "github.com/hupe1980/meshdesc/core"

// Ref is a typed handle to a column of a Set, indexed by element ID.
//
// The zero Ref is invalid; GetRef returns it when the attribute is missing or
// has a different value type. A valid Ref stays usable until the attribute is
// unregistered or re-registered with another type.
type Ref[ID core.ElementID, T Value] struct {
	col *ArraySet[T]
}

// IsValid reports whether the reference points at a column.
func (r Ref[ID, T]) IsValid() bool { return r.col != nil }

// Get returns the channel 0 value for id.
func (r Ref[ID, T]) Get(id ID) T { return r.col.Get(int(id), 0) }

// GetChannel returns the value for id in channel ch.
func (r Ref[ID, T]) GetChannel(id ID, ch int) T { return r.col.Get(int(id), ch) }

// Set stores the channel 0 value for id.
func (r Ref[ID, T]) Set(id ID, v T) { r.col.Set(int(id), 0, v) }

// SetChannel stores the value for id in channel ch.
func (r Ref[ID, T]) SetChannel(id ID, ch int, v T) { r.col.Set(int(id), ch, v) }

// NumChannels returns the channel count, or 0 for an invalid reference.
func (r Ref[ID, T]) NumChannels() int {
	if r.col == nil {
		return 0
	}
	return r.col.NumChannels()
}

// NumElements returns the column length, or 0 for an invalid reference.
func (r Ref[ID, T]) NumElements() int {
	if r.col == nil {
		return 0
	}
	return r.col.NumElements()
}

// Default returns the column default, or the zero value for an invalid reference.
func (r Ref[ID, T]) Default() T {
	if r.col == nil {
		var zero T
		return zero
	}
	return r.col.Default()
}

// Flags returns the attribute flags, or FlagNone for an invalid reference.
func (r Ref[ID, T]) Flags() Flags {
	if r.col == nil {
		return FlagNone
	}
	return r.col.Flags()
}

// Values returns the backing slice of channel ch, indexed by element ID.
func (r Ref[ID, T]) Values(ch int) []T { return r.col.Channel(ch) }

// SetNumChannels changes the channel count of the referenced column.
func (r Ref[ID, T]) SetNumChannels(n int) { r.col.SetNumChannels(n) }

// Column returns the underlying column, or nil for an invalid reference.
func (r Ref[ID, T]) Column() *ArraySet[T] { return r.col }

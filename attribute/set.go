package attribute

import (
	"slices"

	"github.com/hupe1980/meshdesc/core"
)

// Set holds the attributes registered for one element kind.
//
// Every column in the set has exactly NumElements slots, kept in step with
// the owning element array through Insert, Remove, Initialize and Remap.
type Set[ID core.ElementID] struct {
	columns     map[string]column
	numElements int
}

// NewSet creates an empty attribute set.
func NewSet[ID core.ElementID]() *Set[ID] {
	return &Set[ID]{columns: make(map[string]column)}
}

// Register registers an attribute of type T, or updates an existing one.
//
// If an attribute of the same type already exists under name, its channel
// count and flags are updated and its values kept. If one exists with another
// type it is discarded and rebuilt with defaults.
func Register[T Value, ID core.ElementID](s *Set[ID], name string, channels int, def T, flags Flags) Ref[ID, T] {
	if c, ok := s.columns[name]; ok {
		if a, ok := c.(*ArraySet[T]); ok {
			a.SetNumChannels(max(channels, 1))
			a.setFlags(flags)
			return Ref[ID, T]{col: a}
		}
		delete(s.columns, name)
	}
	a := NewArraySet(channels, def, flags, s.numElements)
	s.columns[name] = a
	return Ref[ID, T]{col: a}
}

// RegisterType registers an attribute from a runtime type tag with the type's
// zero default. It returns false if t is not a valid type.
func (s *Set[ID]) RegisterType(t Type, name string, channels int, flags Flags) bool {
	if !t.IsValid() {
		return false
	}
	if c, ok := s.columns[name]; ok && c.Type() == t {
		c.SetNumChannels(max(channels, 1))
		c.setFlags(flags)
		return true
	}
	s.columns[name] = newColumnTable[t](channels, flags, s.numElements)
	return true
}

// GetRef returns a typed reference to the attribute, or an invalid Ref if the
// attribute is missing or stored with another type.
func GetRef[T Value, ID core.ElementID](s *Set[ID], name string) Ref[ID, T] {
	a, _ := s.columns[name].(*ArraySet[T])
	return Ref[ID, T]{col: a}
}

// HasOfType reports whether name is registered with value type T.
func HasOfType[T Value, ID core.ElementID](s *Set[ID], name string) bool {
	_, ok := s.columns[name].(*ArraySet[T])
	return ok
}

// Unregister removes the attribute. Mandatory attributes are kept and false
// is returned.
func (s *Set[ID]) Unregister(name string) bool {
	c, ok := s.columns[name]
	if !ok || c.Flags().Has(FlagMandatory) {
		return false
	}
	delete(s.columns, name)
	return true
}

// Has reports whether name is registered.
func (s *Set[ID]) Has(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// TypeOf returns the value type of name, or TypeInvalid.
func (s *Set[ID]) TypeOf(name string) Type {
	if c, ok := s.columns[name]; ok {
		return c.Type()
	}
	return TypeInvalid
}

// Flags returns the flags of name, or FlagNone if not registered.
func (s *Set[ID]) Flags(name string) Flags {
	if c, ok := s.columns[name]; ok {
		return c.Flags()
	}
	return FlagNone
}

// SetFlags replaces the flags of name.
func (s *Set[ID]) SetFlags(name string, flags Flags) bool {
	c, ok := s.columns[name]
	if ok {
		c.setFlags(flags)
	}
	return ok
}

// Names returns the registered attribute names in sorted order.
func (s *Set[ID]) Names() []string {
	names := make([]string, 0, len(s.columns))
	for name := range s.columns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered attributes.
func (s *Set[ID]) Len() int { return len(s.columns) }

// NumElements returns the slot count shared by every column.
func (s *Set[ID]) NumElements() int { return s.numElements }

// ChannelCount returns the channel count of name, or 0 if not registered.
func (s *Set[ID]) ChannelCount(name string) int {
	if c, ok := s.columns[name]; ok {
		return c.NumChannels()
	}
	return 0
}

// SetChannelCount changes the channel count of name.
func (s *Set[ID]) SetChannelCount(name string, n int) bool {
	c, ok := s.columns[name]
	if ok {
		c.SetNumChannels(n)
	}
	return ok
}

// InsertChannel inserts a default-filled channel of name before index.
func (s *Set[ID]) InsertChannel(name string, index int) bool {
	c, ok := s.columns[name]
	if ok {
		c.InsertChannel(index)
	}
	return ok
}

// RemoveChannel removes channel index of name.
func (s *Set[ID]) RemoveChannel(name string, index int) bool {
	c, ok := s.columns[name]
	if ok {
		c.RemoveChannel(index)
	}
	return ok
}

// Initialize resizes every column to n default-valued slots.
func (s *Set[ID]) Initialize(n int) {
	s.numElements = n
	for _, c := range s.columns {
		c.Initialize(n)
	}
}

// Insert makes id addressable in every column and resets it to defaults.
func (s *Set[ID]) Insert(id ID) {
	index := int(id)
	if index >= s.numElements {
		s.numElements = index + 1
	}
	for _, c := range s.columns {
		c.Insert(index)
	}
}

// Remove resets id to defaults in every column.
func (s *Set[ID]) Remove(id ID) {
	for _, c := range s.columns {
		c.Remove(int(id))
	}
}

// Remap applies an old-to-new index map to every column.
func (s *Set[ID]) Remap(remap core.IndexRemap) {
	s.numElements = remap.NewSize()
	for _, c := range s.columns {
		c.Remap(remap)
	}
}

// Clone returns a deep copy of the set.
func (s *Set[ID]) Clone() *Set[ID] {
	c := &Set[ID]{
		columns:     make(map[string]column, len(s.columns)),
		numElements: s.numElements,
	}
	for name, col := range s.columns {
		c.columns[name] = col.clone()
	}
	return c
}

// Reset removes every attribute and element slot.
func (s *Set[ID]) Reset() {
	clear(s.columns)
	s.numElements = 0
}

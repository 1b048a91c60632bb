package attribute

import (
	"fmt"

	"github.com/hupe1980/meshdesc/core"
	"github.com/hupe1980/meshdesc/geom"
	"github.com/hupe1980/meshdesc/internal/hash"
	"github.com/hupe1980/meshdesc/persistence"
)

// valueCodec writes and reads single values of one type.
type valueCodec[T Value] struct {
	put func(w *persistence.Writer, v T)
	get func(r *persistence.Reader) T
}

var (
	float32Codec = valueCodec[float32]{
		put: (*persistence.Writer).Float32,
		get: (*persistence.Reader).Float32,
	}
	int32Codec = valueCodec[int32]{
		put: (*persistence.Writer).Int32,
		get: (*persistence.Reader).Int32,
	}
	boolCodec = valueCodec[bool]{
		put: (*persistence.Writer).Bool,
		get: (*persistence.Reader).Bool,
	}
	vector2Codec = valueCodec[geom.Vector2]{
		put: func(w *persistence.Writer, v geom.Vector2) {
			w.Float32(v.X)
			w.Float32(v.Y)
		},
		get: func(r *persistence.Reader) geom.Vector2 {
			return geom.Vector2{X: r.Float32(), Y: r.Float32()}
		},
	}
	vector3Codec = valueCodec[geom.Vector3]{
		put: func(w *persistence.Writer, v geom.Vector3) {
			w.Float32(v.X)
			w.Float32(v.Y)
			w.Float32(v.Z)
		},
		get: func(r *persistence.Reader) geom.Vector3 {
			return geom.Vector3{X: r.Float32(), Y: r.Float32(), Z: r.Float32()}
		},
	}
	vector4Codec = valueCodec[geom.Vector4]{
		put: func(w *persistence.Writer, v geom.Vector4) {
			w.Float32(v.X)
			w.Float32(v.Y)
			w.Float32(v.Z)
			w.Float32(v.W)
		},
		get: func(r *persistence.Reader) geom.Vector4 {
			return geom.Vector4{X: r.Float32(), Y: r.Float32(), Z: r.Float32(), W: r.Float32()}
		},
	}
	nameCodec = valueCodec[string]{
		put: (*persistence.Writer).Text,
		get: (*persistence.Reader).Text,
	}
)

func (vc valueCodec[T]) encode(w *persistence.Writer, c column) {
	a := c.(*ArraySet[T])
	vc.put(w, a.def)
	w.Count(len(a.channels))
	for _, values := range a.channels {
		w.Count(len(values))
		for _, v := range values {
			vc.put(w, v)
		}
	}
}

func (vc valueCodec[T]) decode(r *persistence.Reader, flags Flags, numElements int) column {
	a := &ArraySet[T]{flags: flags, numElements: numElements}
	a.def = vc.get(r)
	channels := r.Count()
	if r.Err() == nil && channels < 1 {
		r.Fail(fmt.Errorf("%w: attribute has no channels", persistence.ErrCorrupt))
	}
	a.channels = make([][]T, 0, min(channels, 64))
	for range channels {
		n := r.Count()
		if r.Err() != nil {
			return nil
		}
		if n != numElements {
			r.Fail(fmt.Errorf("%w: channel length %d, want %d", persistence.ErrCorrupt, n, numElements))
			return nil
		}
		values := make([]T, 0, min(n, 1<<12))
		for range n {
			if values = append(values, vc.get(r)); r.Err() != nil {
				return nil
			}
		}
		a.channels = append(a.channels, values)
	}
	if r.Err() != nil {
		return nil
	}
	return a
}

var encodeTable = [numTypes]func(w *persistence.Writer, c column){
	TypeFloat32: float32Codec.encode,
	TypeInt32:   int32Codec.encode,
	TypeBool:    boolCodec.encode,
	TypeVector2: vector2Codec.encode,
	TypeVector3: vector3Codec.encode,
	TypeVector4: vector4Codec.encode,
	TypeName:    nameCodec.encode,
}

var decodeTable = [numTypes]func(r *persistence.Reader, flags Flags, numElements int) column{
	TypeFloat32: float32Codec.decode,
	TypeInt32:   int32Codec.decode,
	TypeBool:    boolCodec.decode,
	TypeVector2: vector2Codec.decode,
	TypeVector3: vector3Codec.decode,
	TypeVector4: vector4Codec.decode,
	TypeName:    nameCodec.decode,
}

// Write serializes every non-transient attribute in name order.
func (s *Set[ID]) Write(w *persistence.Writer) {
	names := make([]string, 0, len(s.columns))
	for _, name := range s.Names() {
		if !s.columns[name].Flags().Has(FlagTransient) {
			names = append(names, name)
		}
	}

	w.Count(s.numElements)
	w.Count(len(names))
	for _, name := range names {
		c := s.columns[name]
		w.Text(name)
		w.Uint8(uint8(c.Type()))
		w.Uint32(uint32(c.Flags()))
		encodeTable[c.Type()](w, c)
	}
}

// Read replaces the set's contents with attributes read from r.
//
// Transient attributes registered before the call are kept and resized to the
// decoded element count, since they are never part of the stream.
func (s *Set[ID]) Read(r *persistence.Reader) error {
	numElements := r.Count()
	count := r.Count()
	if err := r.Err(); err != nil {
		return err
	}

	columns := make(map[string]column, count)
	for range count {
		name := r.Text()
		t := Type(r.Uint8())
		flags := Flags(r.Uint32())
		if err := r.Err(); err != nil {
			return err
		}
		if !t.IsValid() {
			return fmt.Errorf("%w: attribute %q has unknown type %d", persistence.ErrCorrupt, name, t)
		}
		c := decodeTable[t](r, flags, numElements)
		if err := r.Err(); err != nil {
			return fmt.Errorf("attribute %q: %w", name, err)
		}
		columns[name] = c
	}

	for name, c := range s.columns {
		if _, ok := columns[name]; !ok && c.Flags().Has(FlagTransient) {
			c.Initialize(numElements)
			columns[name] = c
		}
	}
	s.columns = columns
	s.numElements = numElements
	return nil
}

// Hash returns a CRC32C over the values of name, or 0 if not registered.
// Equal columns hash equally regardless of registration order.
func (s *Set[ID]) Hash(name string) uint32 {
	c, ok := s.columns[name]
	if !ok {
		return 0
	}
	h := hash.NewCRC32C()
	w := persistence.NewWriter(h)
	w.Uint8(uint8(c.Type()))
	encodeTable[c.Type()](w, c)
	return h.Sum32()
}

// RemapValues applies remap to every value of an int32 column that holds
// element indices. Values without a mapping become -1.
func RemapValues[ID core.ElementID](ref Ref[ID, int32], remap core.IndexRemap) {
	if !ref.IsValid() {
		return
	}
	for ch := range ref.NumChannels() {
		values := ref.Values(ch)
		for i, v := range values {
			values[i] = core.Remapped(remap, v)
		}
	}
}

package meshdesc

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/hupe1980/meshdesc/core"
	"github.com/hupe1980/meshdesc/internal/arena"
	"github.com/hupe1980/meshdesc/persistence"
)

// Save writes the mesh as a checksummed archive: the element arrays in kind
// order followed by one attribute set per kind. The legacy polygon format
// has no triangle array and no triangle attribute set.
//
// Element arrays are written with their holes so IDs survive a round trip.
// Adjacency back-references are not written; Load rebuilds them. Transient
// attributes are skipped.
func (md *MeshDescription) Save(w io.Writer, optFns ...SaveOption) error {
	opts := applySaveOptions(optFns)
	start := time.Now()

	n, err := md.save(w, opts.version)
	md.opts.logger.LogSave(md.ctx(), opts.version, n, err)
	md.opts.metricsCollector.RecordSerialize("save", n, time.Since(start), err)
	return err
}

func (md *MeshDescription) save(w io.Writer, version persistence.FormatVersion) (int64, error) {
	if !version.IsSupported() {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	aw, err := persistence.NewArchiveWriter(w, version)
	if err != nil {
		return 0, err
	}
	bw := aw.Writer

	writeArray(bw, md.vertices, func(*vertex) {})
	writeArray(bw, md.vertexInstances, func(vi *vertexInstance) {
		bw.Int32(int32(vi.vertex))
	})
	writeArray(bw, md.edges, func(e *edge) {
		bw.Int32(int32(e.vertices[0]))
		bw.Int32(int32(e.vertices[1]))
	})
	if version.HasTriangles() {
		writeArray(bw, md.triangles, func(t *triangle) {
			for _, c := range t.corners {
				bw.Int32(int32(c))
			}
			bw.Int32(int32(t.polygon))
		})
	}
	writeArray(bw, md.polygons, func(p *polygon) {
		bw.Int32(int32(p.group))
		if version.HasTriangles() && len(p.perimeter) == 3 && len(p.triangles) == 1 {
			// Rebuilt from the single triangle on load.
			bw.Count(0)
			return
		}
		persistence.WriteIDs(bw, p.perimeter)
	})
	writeArray(bw, md.polygonGroups, func(*polygonGroup) {})

	md.vertexAttrs.Write(bw)
	md.vertexInstanceAttrs.Write(bw)
	md.edgeAttrs.Write(bw)
	if version.HasTriangles() {
		md.triangleAttrs.Write(bw)
	}
	md.polygonAttrs.Write(bw)
	md.polygonGroupAttrs.Write(bw)

	if err := aw.Close(); err != nil {
		return aw.Written(), err
	}
	return aw.Written(), nil
}

func writeArray[T any, ID core.ElementID](bw *persistence.Writer, a *arena.ElementArray[T, ID], put func(*T)) {
	if bw.Err() != nil {
		return
	}
	if err := a.WriteValidity(bw); err != nil {
		return
	}
	for _, e := range a.All() {
		put(e)
	}
}

// Load replaces the contents of the mesh with an archive written by Save.
// Archives in the legacy layout are triangulated from their polygon
// perimeters. On error the mesh is left empty. Attribute references obtained
// before Load are invalidated.
func (md *MeshDescription) Load(r io.Reader) error {
	start := time.Now()

	version, n, rebuilt, err := md.load(r)
	if err != nil {
		md.Empty()
	}
	md.opts.logger.LogLoad(md.ctx(), version, rebuilt, err)
	md.opts.metricsCollector.RecordSerialize("load", n, time.Since(start), err)
	return err
}

func (md *MeshDescription) load(r io.Reader) (persistence.FormatVersion, int64, string, error) {
	md.Empty()

	ar, err := persistence.NewArchiveReader(r)
	if err != nil {
		return 0, 0, "", err
	}
	version := ar.Header.Version
	br := ar.Reader

	readArray(br, md.vertices, func(*vertex) {})
	readArray(br, md.vertexInstances, func(vi *vertexInstance) {
		vi.vertex = VertexID(br.Int32())
	})
	readArray(br, md.edges, func(e *edge) {
		e.vertices[0] = VertexID(br.Int32())
		e.vertices[1] = VertexID(br.Int32())
	})
	if version.HasTriangles() {
		readArray(br, md.triangles, func(t *triangle) {
			for i := range t.corners {
				t.corners[i] = VertexInstanceID(br.Int32())
			}
			t.polygon = PolygonID(br.Int32())
		})
	}
	readArray(br, md.polygons, func(p *polygon) {
		p.group = PolygonGroupID(br.Int32())
		p.perimeter = persistence.ReadIDs[VertexInstanceID](br)
	})
	readArray(br, md.polygonGroups, func(*polygonGroup) {})

	readSet := func(read func(*persistence.Reader) error) {
		if br.Err() == nil {
			if err := read(br); err != nil {
				br.Fail(err)
			}
		}
	}
	readSet(md.vertexAttrs.Read)
	readSet(md.vertexInstanceAttrs.Read)
	readSet(md.edgeAttrs.Read)
	if version.HasTriangles() {
		readSet(md.triangleAttrs.Read)
	}
	readSet(md.polygonAttrs.Read)
	readSet(md.polygonGroupAttrs.Read)

	if err := br.Err(); err != nil {
		return version, br.BytesRead(), "", err
	}
	if err := ar.Verify(); err != nil {
		return version, br.BytesRead(), "", err
	}
	if err := md.checkAttributeSizes(); err != nil {
		return version, br.BytesRead(), "", err
	}

	rebuilt := "adjacency"
	if !version.HasTriangles() {
		rebuilt = "adjacency+triangles"
	}
	if err := md.rebuildAdjacency(version.HasTriangles()); err != nil {
		return version, br.BytesRead(), "", err
	}
	return version, br.BytesRead(), rebuilt, nil
}

func readArray[T any, ID core.ElementID](br *persistence.Reader, a *arena.ElementArray[T, ID], get func(*T)) {
	if br.Err() != nil {
		return
	}
	if err := a.ReadValidity(br); err != nil {
		br.Fail(fmt.Errorf("%w: %w", ErrCorrupt, err))
		return
	}
	if a.ArraySize() > persistence.MaxCount {
		br.Fail(fmt.Errorf("%w: %d elements", ErrCorrupt, a.ArraySize()))
		return
	}
	for _, e := range a.All() {
		if br.Err() != nil {
			return
		}
		get(e)
	}
}

func (md *MeshDescription) checkAttributeSizes() error {
	sizes := []struct {
		kind       core.ElementKind
		attrs, arr int
	}{
		{core.KindVertex, md.vertexAttrs.NumElements(), md.vertices.ArraySize()},
		{core.KindVertexInstance, md.vertexInstanceAttrs.NumElements(), md.vertexInstances.ArraySize()},
		{core.KindEdge, md.edgeAttrs.NumElements(), md.edges.ArraySize()},
		{core.KindPolygon, md.polygonAttrs.NumElements(), md.polygons.ArraySize()},
		{core.KindPolygonGroup, md.polygonGroupAttrs.NumElements(), md.polygonGroups.ArraySize()},
		{core.KindTriangle, md.triangleAttrs.NumElements(), md.triangles.ArraySize()},
	}
	for _, s := range sizes {
		if s.attrs != s.arr {
			return fmt.Errorf("%w: %s attributes sized %d, elements %d", ErrCorrupt, s.kind, s.attrs, s.arr)
		}
	}
	return nil
}

// rebuildAdjacency restores every back-reference from the forward
// references read from an archive and validates them.
func (md *MeshDescription) rebuildAdjacency(hasTriangles bool) error {
	for id, vi := range md.vertexInstances.All() {
		v := md.vertices.Get(vi.vertex)
		if v == nil {
			return fmt.Errorf("%w: vertex instance %d references vertex %d", ErrCorrupt, id, vi.vertex)
		}
		v.instances = append(v.instances, id)
	}

	for id, e := range md.edges.All() {
		for _, vid := range e.vertices {
			v := md.vertices.Get(vid)
			if v == nil {
				return fmt.Errorf("%w: edge %d references vertex %d", ErrCorrupt, id, vid)
			}
			v.edges = append(v.edges, id)
		}
	}

	if hasTriangles {
		for id, t := range md.triangles.All() {
			p := md.polygons.Get(t.polygon)
			if p == nil {
				return fmt.Errorf("%w: triangle %d references polygon %d", ErrCorrupt, id, t.polygon)
			}
			for _, c := range t.corners {
				if !md.vertexInstances.IsValid(c) {
					return fmt.Errorf("%w: triangle %d references vertex instance %d", ErrCorrupt, id, c)
				}
			}
			p.triangles = append(p.triangles, id)
		}
	}

	for id, p := range md.polygons.All() {
		if len(p.perimeter) == 0 && hasTriangles && len(p.triangles) == 1 {
			p.perimeter = slices.Clone(md.triangles.Get(p.triangles[0]).corners[:])
		}
		if len(p.perimeter) < 3 {
			return fmt.Errorf("%w: polygon %d has %d perimeter corners", ErrCorrupt, id, len(p.perimeter))
		}
		for _, c := range p.perimeter {
			if !md.vertexInstances.IsValid(c) {
				return fmt.Errorf("%w: polygon %d references vertex instance %d", ErrCorrupt, id, c)
			}
		}
		g := md.polygonGroups.Get(p.group)
		if g == nil {
			return fmt.Errorf("%w: polygon %d references polygon group %d", ErrCorrupt, id, p.group)
		}
		g.polygons = append(g.polygons, id)
	}

	if !hasTriangles {
		for _, id := range md.polygons.IDs() {
			md.ComputePolygonTriangulation(id)
		}
		return nil
	}

	for id, t := range md.triangles.All() {
		for i := range 3 {
			v0 := md.GetVertexInstanceVertex(t.corners[i])
			v1 := md.GetVertexInstanceVertex(t.corners[(i+1)%3])
			e := md.GetVertexPairEdge(v0, v1)
			if e == InvalidEdgeID {
				return fmt.Errorf("%w: triangle %d has no edge between vertices %d and %d", ErrCorrupt, id, v0, v1)
			}
			ed := md.edges.Get(e)
			ed.triangles = addUnique(ed.triangles, id)
		}
		for _, c := range t.corners {
			inst := md.vertexInstances.Get(c)
			inst.triangles = addUnique(inst.triangles, id)
		}
	}
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler using the current format.
func (md *MeshDescription) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (md *MeshDescription) UnmarshalBinary(data []byte) error {
	return md.Load(bytes.NewReader(data))
}

// SaveFile writes the mesh to filename atomically.
func (md *MeshDescription) SaveFile(filename string, optFns ...SaveOption) error {
	return persistence.SaveToFile(filename, func(w io.Writer) error {
		return md.Save(w, optFns...)
	})
}

// LoadFile replaces the contents of the mesh with the archive in filename.
func (md *MeshDescription) LoadFile(filename string) error {
	return persistence.LoadFromFile(filename, md.Load)
}

package meshdesc

import (
	"context"

	"github.com/hupe1980/meshdesc/attribute"
	"github.com/hupe1980/meshdesc/core"
	"github.com/hupe1980/meshdesc/geom"
	"github.com/hupe1980/meshdesc/internal/arena"
)

// MeshDescription is a polygonal mesh topology store.
//
// It owns one element array and one attribute set per element kind and
// keeps every adjacency back-reference consistent across creation and
// deletion. The zero value is not usable; call New.
type MeshDescription struct {
	vertices        *arena.ElementArray[vertex, VertexID]
	vertexInstances *arena.ElementArray[vertexInstance, VertexInstanceID]
	edges           *arena.ElementArray[edge, EdgeID]
	triangles       *arena.ElementArray[triangle, TriangleID]
	polygons        *arena.ElementArray[polygon, PolygonID]
	polygonGroups   *arena.ElementArray[polygonGroup, PolygonGroupID]

	vertexAttrs         *attribute.Set[VertexID]
	vertexInstanceAttrs *attribute.Set[VertexInstanceID]
	edgeAttrs           *attribute.Set[EdgeID]
	triangleAttrs       *attribute.Set[TriangleID]
	polygonAttrs        *attribute.Set[PolygonID]
	polygonGroupAttrs   *attribute.Set[PolygonGroupID]

	opts options
}

// New creates an empty mesh description. Unless WithoutDefaultAttributes is
// given, the vertex Position attribute is registered.
func New(optFns ...Option) *MeshDescription {
	md := &MeshDescription{
		vertices:        arena.New[vertex, VertexID](),
		vertexInstances: arena.New[vertexInstance, VertexInstanceID](),
		edges:           arena.New[edge, EdgeID](),
		triangles:       arena.New[triangle, TriangleID](),
		polygons:        arena.New[polygon, PolygonID](),
		polygonGroups:   arena.New[polygonGroup, PolygonGroupID](),

		vertexAttrs:         attribute.NewSet[VertexID](),
		vertexInstanceAttrs: attribute.NewSet[VertexInstanceID](),
		edgeAttrs:           attribute.NewSet[EdgeID](),
		triangleAttrs:       attribute.NewSet[TriangleID](),
		polygonAttrs:        attribute.NewSet[PolygonID](),
		polygonGroupAttrs:   attribute.NewSet[PolygonGroupID](),

		opts: applyOptions(optFns),
	}
	if md.opts.defaultAttributes {
		attribute.Register(md.vertexAttrs, VertexAttributePosition, 1, geom.Vector3{},
			attribute.FlagLerpable|attribute.FlagMandatory)
	}
	return md
}

// Logger returns the logger configured for the mesh.
func (md *MeshDescription) Logger() *Logger { return md.opts.logger }

// VertexAttributes returns the attribute set of the vertex kind.
func (md *MeshDescription) VertexAttributes() *attribute.Set[VertexID] { return md.vertexAttrs }

// VertexInstanceAttributes returns the attribute set of the vertex instance kind.
func (md *MeshDescription) VertexInstanceAttributes() *attribute.Set[VertexInstanceID] {
	return md.vertexInstanceAttrs
}

// EdgeAttributes returns the attribute set of the edge kind.
func (md *MeshDescription) EdgeAttributes() *attribute.Set[EdgeID] { return md.edgeAttrs }

// TriangleAttributes returns the attribute set of the triangle kind.
func (md *MeshDescription) TriangleAttributes() *attribute.Set[TriangleID] { return md.triangleAttrs }

// PolygonAttributes returns the attribute set of the polygon kind.
func (md *MeshDescription) PolygonAttributes() *attribute.Set[PolygonID] { return md.polygonAttrs }

// PolygonGroupAttributes returns the attribute set of the polygon group kind.
func (md *MeshDescription) PolygonGroupAttributes() *attribute.Set[PolygonGroupID] {
	return md.polygonGroupAttrs
}

// VertexPositions returns the Position attribute. The reference is invalid
// if the attribute is not registered.
func (md *MeshDescription) VertexPositions() attribute.Ref[VertexID, geom.Vector3] {
	return attribute.GetRef[geom.Vector3](md.vertexAttrs, VertexAttributePosition)
}

// Counts of live elements.

func (md *MeshDescription) NumVertices() int        { return md.vertices.Len() }
func (md *MeshDescription) NumVertexInstances() int { return md.vertexInstances.Len() }
func (md *MeshDescription) NumEdges() int           { return md.edges.Len() }
func (md *MeshDescription) NumTriangles() int       { return md.triangles.Len() }
func (md *MeshDescription) NumPolygons() int        { return md.polygons.Len() }
func (md *MeshDescription) NumPolygonGroups() int   { return md.polygonGroups.Len() }

// Validity checks.

func (md *MeshDescription) IsVertexValid(id VertexID) bool { return md.vertices.IsValid(id) }
func (md *MeshDescription) IsVertexInstanceValid(id VertexInstanceID) bool {
	return md.vertexInstances.IsValid(id)
}
func (md *MeshDescription) IsEdgeValid(id EdgeID) bool         { return md.edges.IsValid(id) }
func (md *MeshDescription) IsTriangleValid(id TriangleID) bool { return md.triangles.IsValid(id) }
func (md *MeshDescription) IsPolygonValid(id PolygonID) bool   { return md.polygons.IsValid(id) }
func (md *MeshDescription) IsPolygonGroupValid(id PolygonGroupID) bool {
	return md.polygonGroups.IsValid(id)
}

// Live element IDs in ascending order.

func (md *MeshDescription) VertexIDs() []VertexID                 { return md.vertices.IDs() }
func (md *MeshDescription) VertexInstanceIDs() []VertexInstanceID { return md.vertexInstances.IDs() }
func (md *MeshDescription) EdgeIDs() []EdgeID                     { return md.edges.IDs() }
func (md *MeshDescription) TriangleIDs() []TriangleID             { return md.triangles.IDs() }
func (md *MeshDescription) PolygonIDs() []PolygonID               { return md.polygons.IDs() }
func (md *MeshDescription) PolygonGroupIDs() []PolygonGroupID     { return md.polygonGroups.IDs() }

// ReserveNewVertices grows vertex storage for n more vertices.
func (md *MeshDescription) ReserveNewVertices(n int) { md.vertices.Reserve(n) }

// ReserveNewVertexInstances grows vertex instance storage for n more instances.
func (md *MeshDescription) ReserveNewVertexInstances(n int) { md.vertexInstances.Reserve(n) }

// ReserveNewEdges grows edge storage for n more edges.
func (md *MeshDescription) ReserveNewEdges(n int) { md.edges.Reserve(n) }

// ReserveNewTriangles grows triangle storage for n more triangles.
func (md *MeshDescription) ReserveNewTriangles(n int) { md.triangles.Reserve(n) }

// ReserveNewPolygons grows polygon storage for n more polygons.
func (md *MeshDescription) ReserveNewPolygons(n int) { md.polygons.Reserve(n) }

// ReserveNewPolygonGroups grows polygon group storage for n more groups.
func (md *MeshDescription) ReserveNewPolygonGroups(n int) { md.polygonGroups.Reserve(n) }

// Empty removes every element. Registered attributes are kept with zero elements.
func (md *MeshDescription) Empty() {
	md.vertices.Reset()
	md.vertexInstances.Reset()
	md.edges.Reset()
	md.triangles.Reset()
	md.polygons.Reset()
	md.polygonGroups.Reset()

	md.vertexAttrs.Initialize(0)
	md.vertexInstanceAttrs.Initialize(0)
	md.edgeAttrs.Initialize(0)
	md.triangleAttrs.Initialize(0)
	md.polygonAttrs.Initialize(0)
	md.polygonGroupAttrs.Initialize(0)
}

// IsEmpty reports whether no element slot, live or free, is allocated.
func (md *MeshDescription) IsEmpty() bool {
	return md.vertices.ArraySize() == 0 &&
		md.vertexInstances.ArraySize() == 0 &&
		md.edges.ArraySize() == 0 &&
		md.triangles.ArraySize() == 0 &&
		md.polygons.ArraySize() == 0 &&
		md.polygonGroups.ArraySize() == 0
}

// Clone returns a deep copy of the mesh sharing its options.
func (md *MeshDescription) Clone() *MeshDescription {
	c := &MeshDescription{
		vertices:        arena.New[vertex, VertexID](),
		vertexInstances: arena.New[vertexInstance, VertexInstanceID](),
		edges:           arena.New[edge, EdgeID](),
		triangles:       arena.New[triangle, TriangleID](),
		polygons:        arena.New[polygon, PolygonID](),
		polygonGroups:   arena.New[polygonGroup, PolygonGroupID](),

		vertexAttrs:         md.vertexAttrs.Clone(),
		vertexInstanceAttrs: md.vertexInstanceAttrs.Clone(),
		edgeAttrs:           md.edgeAttrs.Clone(),
		triangleAttrs:       md.triangleAttrs.Clone(),
		polygonAttrs:        md.polygonAttrs.Clone(),
		polygonGroupAttrs:   md.polygonGroupAttrs.Clone(),

		opts: md.opts,
	}
	cloneArray(c.vertices, md.vertices, func(d, s *vertex) {
		d.instances = append([]VertexInstanceID(nil), s.instances...)
		d.edges = append([]EdgeID(nil), s.edges...)
	})
	cloneArray(c.vertexInstances, md.vertexInstances, func(d, s *vertexInstance) {
		d.vertex = s.vertex
		d.triangles = append([]TriangleID(nil), s.triangles...)
	})
	cloneArray(c.edges, md.edges, func(d, s *edge) {
		d.vertices = s.vertices
		d.triangles = append([]TriangleID(nil), s.triangles...)
	})
	cloneArray(c.triangles, md.triangles, func(d, s *triangle) { *d = *s })
	cloneArray(c.polygons, md.polygons, func(d, s *polygon) {
		d.perimeter = append([]VertexInstanceID(nil), s.perimeter...)
		d.triangles = append([]TriangleID(nil), s.triangles...)
		d.group = s.group
	})
	cloneArray(c.polygonGroups, md.polygonGroups, func(d, s *polygonGroup) {
		d.polygons = append([]PolygonID(nil), s.polygons...)
	})
	return c
}

func cloneArray[T any, ID core.ElementID](dst, src *arena.ElementArray[T, ID], copyFn func(d, s *T)) {
	dst.Reserve(src.ArraySize())
	for id, s := range src.All() {
		_ = dst.Insert(id)
		copyFn(dst.Get(id), s)
	}
	// Trailing holes keep the attribute sets and arrays the same size.
	if n := src.ArraySize(); dst.ArraySize() < n {
		_ = dst.Insert(ID(n - 1))
		dst.Remove(ID(n - 1))
	}
}

func (md *MeshDescription) ctx() context.Context { return context.Background() }

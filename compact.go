package meshdesc

import (
	"time"

	"github.com/hupe1980/meshdesc/core"
)

// ElementIDRemappings holds one old-to-new index table per element kind.
// A nil table leaves the IDs of that kind unchanged.
type ElementIDRemappings struct {
	Vertices        core.IndexRemap
	VertexInstances core.IndexRemap
	Edges           core.IndexRemap
	Triangles       core.IndexRemap
	Polygons        core.IndexRemap
	PolygonGroups   core.IndexRemap
}

// IsIdentity reports whether applying r changes no ID.
func (r ElementIDRemappings) IsIdentity() bool {
	return r.Vertices.IsIdentity() &&
		r.VertexInstances.IsIdentity() &&
		r.Edges.IsIdentity() &&
		r.Triangles.IsIdentity() &&
		r.Polygons.IsIdentity() &&
		r.PolygonGroups.IsIdentity()
}

func (r ElementIDRemappings) Vertex(id VertexID) VertexID { return core.Remapped(r.Vertices, id) }
func (r ElementIDRemappings) VertexInstance(id VertexInstanceID) VertexInstanceID {
	return core.Remapped(r.VertexInstances, id)
}
func (r ElementIDRemappings) Edge(id EdgeID) EdgeID             { return core.Remapped(r.Edges, id) }
func (r ElementIDRemappings) Triangle(id TriangleID) TriangleID { return core.Remapped(r.Triangles, id) }
func (r ElementIDRemappings) Polygon(id PolygonID) PolygonID    { return core.Remapped(r.Polygons, id) }
func (r ElementIDRemappings) PolygonGroup(id PolygonGroupID) PolygonGroupID {
	return core.Remapped(r.PolygonGroups, id)
}

// Compact renumbers every element kind densely, dropping the holes left by
// deletions, and rewrites all cross-references and attribute columns.
// Element IDs held outside the mesh must be translated with the returned
// remappings.
func (md *MeshDescription) Compact() ElementIDRemappings {
	start := time.Now()
	before := md.totalArraySize()

	r := ElementIDRemappings{
		Vertices:        md.vertices.Compact(),
		VertexInstances: md.vertexInstances.Compact(),
		Edges:           md.edges.Compact(),
		Triangles:       md.triangles.Compact(),
		Polygons:        md.polygons.Compact(),
		PolygonGroups:   md.polygonGroups.Compact(),
	}
	md.remapAttributes(r)
	md.fixUpElementIDs(r)

	removed := before - md.totalArraySize()
	duration := time.Since(start)
	md.opts.logger.LogCompact(md.ctx(), removed, duration)
	md.opts.metricsCollector.RecordCompact(duration, removed)
	return r
}

// Remap moves elements to the IDs given by r and rewrites all
// cross-references and attribute columns. Elements mapped to -1 are dropped
// without fixing references to them; callers remove such elements first.
func (md *MeshDescription) Remap(r ElementIDRemappings) {
	r = md.completeRemappings(r)
	md.vertices.Remap(r.Vertices)
	md.vertexInstances.Remap(r.VertexInstances)
	md.edges.Remap(r.Edges)
	md.triangles.Remap(r.Triangles)
	md.polygons.Remap(r.Polygons)
	md.polygonGroups.Remap(r.PolygonGroups)
	md.remapAttributes(r)
	md.fixUpElementIDs(r)
}

func (md *MeshDescription) completeRemappings(r ElementIDRemappings) ElementIDRemappings {
	if r.Vertices == nil {
		r.Vertices = core.IdentityRemap(md.vertices.ArraySize())
	}
	if r.VertexInstances == nil {
		r.VertexInstances = core.IdentityRemap(md.vertexInstances.ArraySize())
	}
	if r.Edges == nil {
		r.Edges = core.IdentityRemap(md.edges.ArraySize())
	}
	if r.Triangles == nil {
		r.Triangles = core.IdentityRemap(md.triangles.ArraySize())
	}
	if r.Polygons == nil {
		r.Polygons = core.IdentityRemap(md.polygons.ArraySize())
	}
	if r.PolygonGroups == nil {
		r.PolygonGroups = core.IdentityRemap(md.polygonGroups.ArraySize())
	}
	return r
}

func (md *MeshDescription) totalArraySize() int {
	return md.vertices.ArraySize() + md.vertexInstances.ArraySize() + md.edges.ArraySize() +
		md.triangles.ArraySize() + md.polygons.ArraySize() + md.polygonGroups.ArraySize()
}

func (md *MeshDescription) remapAttributes(r ElementIDRemappings) {
	md.vertexAttrs.Remap(r.Vertices)
	md.vertexInstanceAttrs.Remap(r.VertexInstances)
	md.edgeAttrs.Remap(r.Edges)
	md.triangleAttrs.Remap(r.Triangles)
	md.polygonAttrs.Remap(r.Polygons)
	md.polygonGroupAttrs.Remap(r.PolygonGroups)
}

// fixUpElementIDs rewrites every stored cross-reference through r.
func (md *MeshDescription) fixUpElementIDs(r ElementIDRemappings) {
	for _, v := range md.vertices.All() {
		remapIDs(r.VertexInstances, v.instances)
		remapIDs(r.Edges, v.edges)
	}
	for _, vi := range md.vertexInstances.All() {
		vi.vertex = r.Vertex(vi.vertex)
		remapIDs(r.Triangles, vi.triangles)
	}
	for _, e := range md.edges.All() {
		e.vertices[0] = r.Vertex(e.vertices[0])
		e.vertices[1] = r.Vertex(e.vertices[1])
		remapIDs(r.Triangles, e.triangles)
	}
	for _, t := range md.triangles.All() {
		remapIDs(r.VertexInstances, t.corners[:])
		t.polygon = r.Polygon(t.polygon)
	}
	for _, p := range md.polygons.All() {
		remapIDs(r.VertexInstances, p.perimeter)
		remapIDs(r.Triangles, p.triangles)
		p.group = r.PolygonGroup(p.group)
	}
	for _, g := range md.polygonGroups.All() {
		remapIDs(r.Polygons, g.polygons)
	}
}

func remapIDs[ID core.ElementID](r core.IndexRemap, ids []ID) {
	for i, id := range ids {
		ids[i] = core.Remapped(r, id)
	}
}

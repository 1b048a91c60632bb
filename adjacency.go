package meshdesc

import (
	"slices"
)

// GetVertexVertexInstances returns the instances of vertex v.
func (md *MeshDescription) GetVertexVertexInstances(v VertexID) []VertexInstanceID {
	if vert := md.vertices.Get(v); vert != nil {
		return slices.Clone(vert.instances)
	}
	return nil
}

// NumVertexVertexInstances returns the number of instances of vertex v.
func (md *MeshDescription) NumVertexVertexInstances(v VertexID) int {
	if vert := md.vertices.Get(v); vert != nil {
		return len(vert.instances)
	}
	return 0
}

// GetVertexConnectedEdges returns the edges connected to vertex v.
func (md *MeshDescription) GetVertexConnectedEdges(v VertexID) []EdgeID {
	if vert := md.vertices.Get(v); vert != nil {
		return slices.Clone(vert.edges)
	}
	return nil
}

// NumVertexConnectedEdges returns the number of edges connected to vertex v.
func (md *MeshDescription) NumVertexConnectedEdges(v VertexID) int {
	if vert := md.vertices.Get(v); vert != nil {
		return len(vert.edges)
	}
	return 0
}

// GetVertexConnectedTriangles returns the triangles using any instance of vertex v.
func (md *MeshDescription) GetVertexConnectedTriangles(v VertexID) []TriangleID {
	vert := md.vertices.Get(v)
	if vert == nil {
		return nil
	}
	var out []TriangleID
	for _, vi := range vert.instances {
		for _, t := range md.vertexInstances.Get(vi).triangles {
			out = addUnique(out, t)
		}
	}
	return out
}

// GetVertexConnectedPolygons returns the polygons using any instance of vertex v.
func (md *MeshDescription) GetVertexConnectedPolygons(v VertexID) []PolygonID {
	var out []PolygonID
	for _, t := range md.GetVertexConnectedTriangles(v) {
		out = addUnique(out, md.triangles.Get(t).polygon)
	}
	return out
}

// GetVertexAdjacentVertices returns the vertices sharing an edge with v.
func (md *MeshDescription) GetVertexAdjacentVertices(v VertexID) []VertexID {
	vert := md.vertices.Get(v)
	if vert == nil {
		return nil
	}
	out := make([]VertexID, 0, len(vert.edges))
	for _, e := range vert.edges {
		ed := md.edges.Get(e)
		other := ed.vertices[0]
		if other == v {
			other = ed.vertices[1]
		}
		out = append(out, other)
	}
	return out
}

// GetVertexPairEdge returns the edge between v0 and v1 in either direction,
// or InvalidEdgeID.
func (md *MeshDescription) GetVertexPairEdge(v0, v1 VertexID) EdgeID {
	vert := md.vertices.Get(v0)
	if vert == nil {
		return InvalidEdgeID
	}
	for _, e := range vert.edges {
		ev := md.edges.Get(e).vertices
		if (ev[0] == v0 && ev[1] == v1) || (ev[0] == v1 && ev[1] == v0) {
			return e
		}
	}
	return InvalidEdgeID
}

// GetVertexInstancePairEdge returns the edge between the vertices of two
// vertex instances, or InvalidEdgeID.
func (md *MeshDescription) GetVertexInstancePairEdge(vi0, vi1 VertexInstanceID) EdgeID {
	return md.GetVertexPairEdge(md.GetVertexInstanceVertex(vi0), md.GetVertexInstanceVertex(vi1))
}

// IsVertexOrphaned reports whether no instance of vertex v is used by a triangle.
func (md *MeshDescription) IsVertexOrphaned(v VertexID) bool {
	vert := md.vertices.Get(v)
	if vert == nil {
		return false
	}
	for _, vi := range vert.instances {
		if len(md.vertexInstances.Get(vi).triangles) > 0 {
			return false
		}
	}
	return true
}

// GetVertexInstanceVertex returns the vertex of instance vi, or InvalidVertexID.
func (md *MeshDescription) GetVertexInstanceVertex(vi VertexInstanceID) VertexID {
	if inst := md.vertexInstances.Get(vi); inst != nil {
		return inst.vertex
	}
	return InvalidVertexID
}

// GetVertexInstanceConnectedTriangles returns the triangles using instance vi.
func (md *MeshDescription) GetVertexInstanceConnectedTriangles(vi VertexInstanceID) []TriangleID {
	if inst := md.vertexInstances.Get(vi); inst != nil {
		return slices.Clone(inst.triangles)
	}
	return nil
}

// NumVertexInstanceConnectedTriangles returns the number of triangles using instance vi.
func (md *MeshDescription) NumVertexInstanceConnectedTriangles(vi VertexInstanceID) int {
	if inst := md.vertexInstances.Get(vi); inst != nil {
		return len(inst.triangles)
	}
	return 0
}

// GetVertexInstanceConnectedPolygons returns the polygons using instance vi.
func (md *MeshDescription) GetVertexInstanceConnectedPolygons(vi VertexInstanceID) []PolygonID {
	inst := md.vertexInstances.Get(vi)
	if inst == nil {
		return nil
	}
	var out []PolygonID
	for _, t := range inst.triangles {
		out = addUnique(out, md.triangles.Get(t).polygon)
	}
	return out
}

// GetVertexInstanceForTriangleVertex returns the corner of triangle t that
// instances vertex v, or InvalidVertexInstanceID.
func (md *MeshDescription) GetVertexInstanceForTriangleVertex(t TriangleID, v VertexID) VertexInstanceID {
	tri := md.triangles.Get(t)
	if tri == nil {
		return InvalidVertexInstanceID
	}
	for _, vi := range tri.corners {
		if md.GetVertexInstanceVertex(vi) == v {
			return vi
		}
	}
	return InvalidVertexInstanceID
}

// GetVertexInstanceForPolygonVertex returns the perimeter corner of polygon
// p that instances vertex v, or InvalidVertexInstanceID.
func (md *MeshDescription) GetVertexInstanceForPolygonVertex(p PolygonID, v VertexID) VertexInstanceID {
	poly := md.polygons.Get(p)
	if poly == nil {
		return InvalidVertexInstanceID
	}
	for _, vi := range poly.perimeter {
		if md.GetVertexInstanceVertex(vi) == v {
			return vi
		}
	}
	return InvalidVertexInstanceID
}

// GetEdgeVertices returns the two vertices of edge e.
func (md *MeshDescription) GetEdgeVertices(e EdgeID) [2]VertexID {
	if ed := md.edges.Get(e); ed != nil {
		return ed.vertices
	}
	return [2]VertexID{InvalidVertexID, InvalidVertexID}
}

// GetEdgeVertex returns vertex i (0 or 1) of edge e.
func (md *MeshDescription) GetEdgeVertex(e EdgeID, i int) VertexID {
	return md.GetEdgeVertices(e)[i]
}

// GetEdgeConnectedTriangles returns the triangles using edge e.
func (md *MeshDescription) GetEdgeConnectedTriangles(e EdgeID) []TriangleID {
	if ed := md.edges.Get(e); ed != nil {
		return slices.Clone(ed.triangles)
	}
	return nil
}

// NumEdgeConnectedTriangles returns the number of triangles using edge e.
func (md *MeshDescription) NumEdgeConnectedTriangles(e EdgeID) int {
	if ed := md.edges.Get(e); ed != nil {
		return len(ed.triangles)
	}
	return 0
}

// GetEdgeConnectedPolygons returns the polygons using edge e.
func (md *MeshDescription) GetEdgeConnectedPolygons(e EdgeID) []PolygonID {
	ed := md.edges.Get(e)
	if ed == nil {
		return nil
	}
	var out []PolygonID
	for _, t := range ed.triangles {
		out = addUnique(out, md.triangles.Get(t).polygon)
	}
	return out
}

// NumEdgeConnectedPolygons returns the number of polygons using edge e.
func (md *MeshDescription) NumEdgeConnectedPolygons(e EdgeID) int {
	return len(md.GetEdgeConnectedPolygons(e))
}

// IsEdgeInternal reports whether e is an interior diagonal of an n-gon:
// exactly two triangles use it and both belong to the same polygon.
func (md *MeshDescription) IsEdgeInternal(e EdgeID) bool {
	ed := md.edges.Get(e)
	if ed == nil || len(ed.triangles) != 2 {
		return false
	}
	return md.triangles.Get(ed.triangles[0]).polygon == md.triangles.Get(ed.triangles[1]).polygon
}

// IsEdgeInternalToPolygon reports whether e is an interior diagonal of polygon p.
func (md *MeshDescription) IsEdgeInternalToPolygon(e EdgeID, p PolygonID) bool {
	ed := md.edges.Get(e)
	if ed == nil || len(ed.triangles) != 2 {
		return false
	}
	return md.triangles.Get(ed.triangles[0]).polygon == p && md.triangles.Get(ed.triangles[1]).polygon == p
}

// GetTriangleVertexInstances returns the three corners of triangle t.
func (md *MeshDescription) GetTriangleVertexInstances(t TriangleID) [3]VertexInstanceID {
	if tri := md.triangles.Get(t); tri != nil {
		return tri.corners
	}
	return [3]VertexInstanceID{InvalidVertexInstanceID, InvalidVertexInstanceID, InvalidVertexInstanceID}
}

// GetTriangleVertices returns the vertices of the corners of triangle t.
func (md *MeshDescription) GetTriangleVertices(t TriangleID) [3]VertexID {
	var out [3]VertexID
	for i, vi := range md.GetTriangleVertexInstances(t) {
		out[i] = md.GetVertexInstanceVertex(vi)
	}
	return out
}

// GetTriangleEdges returns the edges along the sides of triangle t, in
// corner order: (c0,c1), (c1,c2), (c2,c0).
func (md *MeshDescription) GetTriangleEdges(t TriangleID) [3]EdgeID {
	vs := md.GetTriangleVertices(t)
	var out [3]EdgeID
	for i := range 3 {
		out[i] = md.GetVertexPairEdge(vs[i], vs[(i+1)%3])
	}
	return out
}

// GetTrianglePolygon returns the polygon owning triangle t.
func (md *MeshDescription) GetTrianglePolygon(t TriangleID) PolygonID {
	if tri := md.triangles.Get(t); tri != nil {
		return tri.polygon
	}
	return InvalidPolygonID
}

// GetTriangleAdjacentTriangles returns the triangles sharing an edge with t.
func (md *MeshDescription) GetTriangleAdjacentTriangles(t TriangleID) []TriangleID {
	if !md.triangles.IsValid(t) {
		return nil
	}
	var out []TriangleID
	for _, e := range md.GetTriangleEdges(t) {
		ed := md.edges.Get(e)
		if ed == nil {
			continue
		}
		for _, other := range ed.triangles {
			if other != t {
				out = addUnique(out, other)
			}
		}
	}
	return out
}

// IsTrianglePartOfNgon reports whether the polygon owning t has more than one triangle.
func (md *MeshDescription) IsTrianglePartOfNgon(t TriangleID) bool {
	return md.NumPolygonTriangles(md.GetTrianglePolygon(t)) > 1
}

// GetPolygonVertexInstances returns the perimeter of polygon p.
func (md *MeshDescription) GetPolygonVertexInstances(p PolygonID) []VertexInstanceID {
	if poly := md.polygons.Get(p); poly != nil {
		return slices.Clone(poly.perimeter)
	}
	return nil
}

// NumPolygonVertices returns the perimeter length of polygon p.
func (md *MeshDescription) NumPolygonVertices(p PolygonID) int {
	if poly := md.polygons.Get(p); poly != nil {
		return len(poly.perimeter)
	}
	return 0
}

// GetPolygonVertices returns the vertices along the perimeter of polygon p.
func (md *MeshDescription) GetPolygonVertices(p PolygonID) []VertexID {
	poly := md.polygons.Get(p)
	if poly == nil {
		return nil
	}
	out := make([]VertexID, len(poly.perimeter))
	for i, vi := range poly.perimeter {
		out[i] = md.GetVertexInstanceVertex(vi)
	}
	return out
}

// GetPolygonPerimeterEdges returns the edges along the perimeter of polygon
// p; edge i joins corner i and corner i+1.
func (md *MeshDescription) GetPolygonPerimeterEdges(p PolygonID) []EdgeID {
	vs := md.GetPolygonVertices(p)
	out := make([]EdgeID, len(vs))
	for i := range vs {
		out[i] = md.GetVertexPairEdge(vs[i], vs[(i+1)%len(vs)])
	}
	return out
}

// GetPolygonInternalEdges returns the interior diagonals of polygon p.
func (md *MeshDescription) GetPolygonInternalEdges(p PolygonID) []EdgeID {
	poly := md.polygons.Get(p)
	if poly == nil || len(poly.triangles) < 2 {
		return nil
	}
	var out []EdgeID
	for _, vi := range poly.perimeter {
		vert := md.vertices.Get(md.GetVertexInstanceVertex(vi))
		if vert == nil {
			continue
		}
		for _, e := range vert.edges {
			if md.IsEdgeInternalToPolygon(e, p) {
				out = addUnique(out, e)
			}
		}
	}
	return out
}

// GetPolygonTriangles returns the triangles of polygon p.
func (md *MeshDescription) GetPolygonTriangles(p PolygonID) []TriangleID {
	if poly := md.polygons.Get(p); poly != nil {
		return slices.Clone(poly.triangles)
	}
	return nil
}

// NumPolygonTriangles returns the number of triangles of polygon p.
func (md *MeshDescription) NumPolygonTriangles(p PolygonID) int {
	if poly := md.polygons.Get(p); poly != nil {
		return len(poly.triangles)
	}
	return 0
}

// GetPolygonPolygonGroup returns the group of polygon p.
func (md *MeshDescription) GetPolygonPolygonGroup(p PolygonID) PolygonGroupID {
	if poly := md.polygons.Get(p); poly != nil {
		return poly.group
	}
	return InvalidPolygonGroupID
}

// GetPolygonAdjacentPolygons returns the polygons sharing a perimeter edge with p.
func (md *MeshDescription) GetPolygonAdjacentPolygons(p PolygonID) []PolygonID {
	var out []PolygonID
	for _, e := range md.GetPolygonPerimeterEdges(p) {
		for _, other := range md.GetEdgeConnectedPolygons(e) {
			if other != p {
				out = addUnique(out, other)
			}
		}
	}
	return out
}

// GetPolygonGroupPolygons returns the polygons of group g.
func (md *MeshDescription) GetPolygonGroupPolygons(g PolygonGroupID) []PolygonID {
	if grp := md.polygonGroups.Get(g); grp != nil {
		return slices.Clone(grp.polygons)
	}
	return nil
}

// NumPolygonGroupPolygons returns the number of polygons in group g.
func (md *MeshDescription) NumPolygonGroupPolygons(g PolygonGroupID) int {
	if grp := md.polygonGroups.Get(g); grp != nil {
		return len(grp.polygons)
	}
	return 0
}

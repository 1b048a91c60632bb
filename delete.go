package meshdesc

import (
	"slices"

	"github.com/hupe1980/meshdesc/core"
)

// DeleteVertex removes a vertex that has no instances and no edges.
func (md *MeshDescription) DeleteVertex(id VertexID) {
	v := md.vertices.Get(id)
	md.check(v != nil, "DeleteVertex", "invalid vertex %d", id)
	if v == nil {
		return
	}
	md.check(len(v.instances) == 0, "DeleteVertex", "vertex %d still has %d vertex instances", id, len(v.instances))
	md.check(len(v.edges) == 0, "DeleteVertex", "vertex %d still has %d edges", id, len(v.edges))

	md.vertices.Remove(id)
	md.vertexAttrs.Remove(id)
	md.opts.metricsCollector.RecordDelete(core.KindVertex)
}

// DeleteVertexInstance removes a vertex instance that is used by no
// triangle. If its vertex is left without instances and edges, the vertex is
// added to orphans.Vertices.
func (md *MeshDescription) DeleteVertexInstance(id VertexInstanceID, orphans *Orphans) {
	inst := md.vertexInstances.Get(id)
	md.check(inst != nil, "DeleteVertexInstance", "invalid vertex instance %d", id)
	if inst == nil {
		return
	}
	md.check(len(inst.triangles) == 0, "DeleteVertexInstance",
		"vertex instance %d is still used by %d triangles", id, len(inst.triangles))

	if v := md.vertices.Get(inst.vertex); v != nil {
		var ok bool
		v.instances, ok = removeSingle(v.instances, id)
		md.check(ok, "DeleteVertexInstance", "vertex %d does not reference instance %d", inst.vertex, id)
		if len(v.instances) == 0 && len(v.edges) == 0 {
			orphans.addVertex(inst.vertex)
		}
	}

	md.vertexInstances.Remove(id)
	md.vertexInstanceAttrs.Remove(id)
	md.opts.metricsCollector.RecordDelete(core.KindVertexInstance)
}

// DeleteEdge removes an edge that is used by no triangle. A vertex left
// without edges and instances is added to orphans.Vertices.
func (md *MeshDescription) DeleteEdge(id EdgeID, orphans *Orphans) {
	e := md.edges.Get(id)
	md.check(e != nil, "DeleteEdge", "invalid edge %d", id)
	if e == nil {
		return
	}
	md.check(len(e.triangles) == 0, "DeleteEdge", "edge %d is still used by %d triangles", id, len(e.triangles))
	md.removeEdge(id, orphans)
}

// removeEdge unlinks an edge from its vertices and frees it without
// checking its triangles.
func (md *MeshDescription) removeEdge(id EdgeID, orphans *Orphans) {
	e := md.edges.Get(id)
	for i, vid := range e.vertices {
		v := md.vertices.Get(vid)
		if v == nil || (i == 1 && vid == e.vertices[0]) {
			continue
		}
		var ok bool
		v.edges, ok = removeSingle(v.edges, id)
		md.check(ok, "DeleteEdge", "vertex %d does not reference edge %d", vid, id)
		if len(v.edges) == 0 && len(v.instances) == 0 {
			orphans.addVertex(vid)
		}
	}

	md.edges.Remove(id)
	md.edgeAttrs.Remove(id)
	md.opts.metricsCollector.RecordDelete(core.KindEdge)
}

// DeletePolygonGroup removes a polygon group that holds no polygons.
func (md *MeshDescription) DeletePolygonGroup(id PolygonGroupID) {
	g := md.polygonGroups.Get(id)
	md.check(g != nil, "DeletePolygonGroup", "invalid polygon group %d", id)
	if g == nil {
		return
	}
	md.check(len(g.polygons) == 0, "DeletePolygonGroup", "polygon group %d still has %d polygons", id, len(g.polygons))

	md.polygonGroups.Remove(id)
	md.polygonGroupAttrs.Remove(id)
	md.opts.metricsCollector.RecordDelete(core.KindPolygonGroup)
}

// DeleteTriangle removes a triangle and the single-triangle polygon owning
// it. Edges, vertex instances and the polygon group left unreferenced are
// collected in orphans. Triangles of an n-gon cannot be deleted
// individually; use DeletePolygon.
func (md *MeshDescription) DeleteTriangle(id TriangleID, orphans *Orphans) {
	t := md.triangles.Get(id)
	md.check(t != nil, "DeleteTriangle", "invalid triangle %d", id)
	if t == nil {
		return
	}
	pid := t.polygon
	p := md.polygons.Get(pid)
	if p != nil {
		md.check(len(p.triangles) <= 1, "DeleteTriangle", "triangle %d is part of n-gon %d", id, pid)
		var ok bool
		p.triangles, ok = removeSingle(p.triangles, id)
		md.check(ok, "DeleteTriangle", "polygon %d does not reference triangle %d", pid, id)
	}

	md.disconnectTriangle(id, orphans)
	md.freeTriangle(id)

	if p != nil && len(p.triangles) == 0 {
		md.removePolygonFromGroup(pid, orphans)
		md.freePolygon(pid)
	}
}

// DeletePolygon removes a polygon and its triangles. Internal edges are
// deleted outright. Perimeter edges, vertex instances and the polygon group
// left unreferenced are collected in orphans.
func (md *MeshDescription) DeletePolygon(id PolygonID, orphans *Orphans) {
	p := md.polygons.Get(id)
	md.check(p != nil, "DeletePolygon", "invalid polygon %d", id)
	if p == nil {
		return
	}

	for _, tid := range slices.Clone(p.triangles) {
		md.disconnectTriangle(tid, orphans)
		md.freeTriangle(tid)
	}

	md.removePolygonFromGroup(id, orphans)
	md.freePolygon(id)
}

// disconnectTriangle unlinks a triangle from its edges and vertex
// instances. An edge internal to the triangle's polygon is deleted; other
// edges and instances left unused are collected in orphans.
func (md *MeshDescription) disconnectTriangle(id TriangleID, orphans *Orphans) {
	t := md.triangles.Get(id)
	edges := md.GetTriangleEdges(id)
	for i, e := range edges {
		if e == InvalidEdgeID || slices.Contains(edges[:i], e) {
			continue
		}
		if md.IsEdgeInternal(e) {
			md.removeEdge(e, nil)
			continue
		}
		ed := md.edges.Get(e)
		var ok bool
		ed.triangles, ok = removeSingle(ed.triangles, id)
		md.check(ok, "DeleteTriangle", "edge %d does not reference triangle %d", e, id)
		if len(ed.triangles) == 0 {
			orphans.addEdge(e)
		}
	}

	for i, vi := range t.corners {
		inst := md.vertexInstances.Get(vi)
		if inst == nil || slices.Contains(t.corners[:i], vi) {
			continue
		}
		var ok bool
		inst.triangles, ok = removeSingle(inst.triangles, id)
		md.check(ok, "DeleteTriangle", "vertex instance %d does not reference triangle %d", vi, id)
		if len(inst.triangles) == 0 {
			orphans.addVertexInstance(vi)
		}
	}
}

func (md *MeshDescription) freeTriangle(id TriangleID) {
	md.triangles.Remove(id)
	md.triangleAttrs.Remove(id)
	md.opts.metricsCollector.RecordDelete(core.KindTriangle)
}

func (md *MeshDescription) removePolygonFromGroup(id PolygonID, orphans *Orphans) {
	gid := md.polygons.Get(id).group
	g := md.polygonGroups.Get(gid)
	if g == nil {
		return
	}
	var ok bool
	g.polygons, ok = removeSingle(g.polygons, id)
	md.check(ok, "DeletePolygon", "polygon group %d does not reference polygon %d", gid, id)
	if len(g.polygons) == 0 {
		orphans.addPolygonGroup(gid)
	}
}

func (md *MeshDescription) freePolygon(id PolygonID) {
	md.polygons.Remove(id)
	md.polygonAttrs.Remove(id)
	md.opts.metricsCollector.RecordDelete(core.KindPolygon)
}

// DeleteTriangles deletes every triangle in ids, then deletes the vertex
// instances, edges, polygon groups and vertices left unreferenced. It
// returns the cascade-deleted elements.
func (md *MeshDescription) DeleteTriangles(ids []TriangleID) Orphans {
	var o Orphans
	for _, id := range ids {
		md.DeleteTriangle(id, &o)
	}
	md.deleteOrphans(&o)
	return o
}

// DeletePolygons deletes every polygon in ids, then deletes the vertex
// instances, edges, polygon groups and vertices left unreferenced. It
// returns the cascade-deleted elements.
func (md *MeshDescription) DeletePolygons(ids []PolygonID) Orphans {
	var o Orphans
	for _, id := range ids {
		md.DeletePolygon(id, &o)
	}
	md.deleteOrphans(&o)
	return o
}

// deleteOrphans deletes the collected orphans. Vertex instances and edges go
// first because deleting them orphans further vertices.
func (md *MeshDescription) deleteOrphans(o *Orphans) {
	for _, vi := range o.VertexInstances {
		if inst := md.vertexInstances.Get(vi); inst != nil && len(inst.triangles) == 0 {
			md.DeleteVertexInstance(vi, o)
		}
	}
	for _, e := range o.Edges {
		if ed := md.edges.Get(e); ed != nil && len(ed.triangles) == 0 {
			md.DeleteEdge(e, o)
		}
	}
	for _, g := range o.PolygonGroups {
		if grp := md.polygonGroups.Get(g); grp != nil && len(grp.polygons) == 0 {
			md.DeletePolygonGroup(g)
		}
	}
	for _, v := range o.Vertices {
		if vert := md.vertices.Get(v); vert != nil && len(vert.edges) == 0 && len(vert.instances) == 0 {
			md.DeleteVertex(v)
		}
	}
}

package meshdesc

import (
	"slices"

	"github.com/hupe1980/meshdesc/core"
)

// CreateVertex adds a vertex and returns its ID.
func (md *MeshDescription) CreateVertex() VertexID {
	id := md.vertices.Add()
	md.initVertex(id)
	return id
}

// CreateVertexWithID adds a vertex with a specific ID. The slot must be free.
func (md *MeshDescription) CreateVertexWithID(id VertexID) {
	err := md.vertices.Insert(id)
	md.check(err == nil, "CreateVertexWithID", "%v", err)
	if err == nil {
		md.initVertex(id)
	}
}

func (md *MeshDescription) initVertex(id VertexID) {
	md.vertexAttrs.Insert(id)
	md.opts.metricsCollector.RecordCreate(core.KindVertex)
}

// CreateVertexInstance adds an instance of vertex v and returns its ID.
func (md *MeshDescription) CreateVertexInstance(v VertexID) VertexInstanceID {
	md.check(md.vertices.IsValid(v), "CreateVertexInstance", "invalid vertex %d", v)
	id := md.vertexInstances.Add()
	md.initVertexInstance(id, v)
	return id
}

// CreateVertexInstanceWithID adds an instance of vertex v with a specific ID.
func (md *MeshDescription) CreateVertexInstanceWithID(id VertexInstanceID, v VertexID) {
	md.check(md.vertices.IsValid(v), "CreateVertexInstanceWithID", "invalid vertex %d", v)
	err := md.vertexInstances.Insert(id)
	md.check(err == nil, "CreateVertexInstanceWithID", "%v", err)
	if err == nil {
		md.initVertexInstance(id, v)
	}
}

func (md *MeshDescription) initVertexInstance(id VertexInstanceID, v VertexID) {
	md.vertexInstances.Get(id).vertex = v
	if vert := md.vertices.Get(v); vert != nil {
		vert.instances = append(vert.instances, id)
	}
	md.vertexInstanceAttrs.Insert(id)
	md.opts.metricsCollector.RecordCreate(core.KindVertexInstance)
}

// CreateEdge adds an edge between v0 and v1. At most one edge may exist per
// vertex pair.
func (md *MeshDescription) CreateEdge(v0, v1 VertexID) EdgeID {
	md.checkNewEdge("CreateEdge", v0, v1)
	id := md.edges.Add()
	md.initEdge(id, v0, v1)
	return id
}

// CreateEdgeWithID adds an edge between v0 and v1 with a specific ID.
func (md *MeshDescription) CreateEdgeWithID(id EdgeID, v0, v1 VertexID) {
	md.checkNewEdge("CreateEdgeWithID", v0, v1)
	err := md.edges.Insert(id)
	md.check(err == nil, "CreateEdgeWithID", "%v", err)
	if err == nil {
		md.initEdge(id, v0, v1)
	}
}

func (md *MeshDescription) checkNewEdge(op string, v0, v1 VertexID) {
	md.check(md.vertices.IsValid(v0) && md.vertices.IsValid(v1), op, "invalid vertices %d, %d", v0, v1)
	md.check(md.GetVertexPairEdge(v0, v1) == InvalidEdgeID, op, "edge between %d and %d already exists", v0, v1)
}

func (md *MeshDescription) initEdge(id EdgeID, v0, v1 VertexID) {
	md.edges.Get(id).vertices = [2]VertexID{v0, v1}
	for _, v := range [2]VertexID{v0, v1} {
		if vert := md.vertices.Get(v); vert != nil {
			vert.edges = addUnique(vert.edges, id)
		}
	}
	md.edgeAttrs.Insert(id)
	md.opts.metricsCollector.RecordCreate(core.KindEdge)
}

// CreatePolygonGroup adds a polygon group and returns its ID.
func (md *MeshDescription) CreatePolygonGroup() PolygonGroupID {
	id := md.polygonGroups.Add()
	md.initPolygonGroup(id)
	return id
}

// CreatePolygonGroupWithID adds a polygon group with a specific ID.
func (md *MeshDescription) CreatePolygonGroupWithID(id PolygonGroupID) {
	err := md.polygonGroups.Insert(id)
	md.check(err == nil, "CreatePolygonGroupWithID", "%v", err)
	if err == nil {
		md.initPolygonGroup(id)
	}
}

func (md *MeshDescription) initPolygonGroup(id PolygonGroupID) {
	md.polygonGroupAttrs.Insert(id)
	md.opts.metricsCollector.RecordCreate(core.KindPolygonGroup)
}

// CreateTriangle adds a triangle together with the single-triangle polygon
// owning it, in polygon group g. Missing edges are created; their IDs are
// appended to newEdges when it is non-nil.
func (md *MeshDescription) CreateTriangle(g PolygonGroupID, corners [3]VertexInstanceID, newEdges *[]EdgeID) TriangleID {
	md.checkNewFace("CreateTriangle", g, corners[:])
	id := md.triangles.Add()
	md.initTriangle(id, g, corners, newEdges)
	return id
}

// CreateTriangleWithID is CreateTriangle with a specific triangle ID.
func (md *MeshDescription) CreateTriangleWithID(id TriangleID, g PolygonGroupID, corners [3]VertexInstanceID, newEdges *[]EdgeID) {
	md.checkNewFace("CreateTriangleWithID", g, corners[:])
	err := md.triangles.Insert(id)
	md.check(err == nil, "CreateTriangleWithID", "%v", err)
	if err == nil {
		md.initTriangle(id, g, corners, newEdges)
	}
}

func (md *MeshDescription) initTriangle(id TriangleID, g PolygonGroupID, corners [3]VertexInstanceID, newEdges *[]EdgeID) {
	md.triangleAttrs.Insert(id)

	pid := md.polygons.Add()
	p := md.polygons.Get(pid)
	p.perimeter = slices.Clone(corners[:])
	p.triangles = []TriangleID{id}
	p.group = g
	md.polygonAttrs.Insert(pid)
	if grp := md.polygonGroups.Get(g); grp != nil {
		grp.polygons = append(grp.polygons, pid)
	}

	t := md.triangles.Get(id)
	t.corners = corners
	t.polygon = pid
	md.connectTriangle(id, newEdges)

	md.opts.metricsCollector.RecordCreate(core.KindTriangle)
	md.opts.metricsCollector.RecordCreate(core.KindPolygon)
}

// CreatePolygon adds a polygon with the given perimeter (at least three
// vertex instances, counter-clockwise when seen from the front) in group g
// and triangulates it. Missing perimeter edges are created; their IDs are
// appended to newEdges when it is non-nil. Internal edges created by the
// triangulation are not reported.
func (md *MeshDescription) CreatePolygon(g PolygonGroupID, perimeter []VertexInstanceID, newEdges *[]EdgeID) PolygonID {
	md.checkNewFace("CreatePolygon", g, perimeter)
	id := md.polygons.Add()
	md.initPolygon(id, g, perimeter, newEdges)
	return id
}

// CreatePolygonWithID is CreatePolygon with a specific polygon ID.
func (md *MeshDescription) CreatePolygonWithID(id PolygonID, g PolygonGroupID, perimeter []VertexInstanceID, newEdges *[]EdgeID) {
	md.checkNewFace("CreatePolygonWithID", g, perimeter)
	err := md.polygons.Insert(id)
	md.check(err == nil, "CreatePolygonWithID", "%v", err)
	if err == nil {
		md.initPolygon(id, g, perimeter, newEdges)
	}
}

func (md *MeshDescription) initPolygon(id PolygonID, g PolygonGroupID, perimeter []VertexInstanceID, newEdges *[]EdgeID) {
	p := md.polygons.Get(id)
	p.perimeter = slices.Clone(perimeter)
	p.group = g
	md.polygonAttrs.Insert(id)

	md.createPolygonEdges(perimeter, newEdges)
	if grp := md.polygonGroups.Get(g); grp != nil {
		grp.polygons = append(grp.polygons, id)
	}
	md.opts.metricsCollector.RecordCreate(core.KindPolygon)

	md.ComputePolygonTriangulation(id)
}

func (md *MeshDescription) checkNewFace(op string, g PolygonGroupID, corners []VertexInstanceID) {
	md.check(md.polygonGroups.IsValid(g), op, "invalid polygon group %d", g)
	md.check(len(corners) >= 3, op, "polygon needs at least 3 vertex instances, got %d", len(corners))
	for _, vi := range corners {
		md.check(md.vertexInstances.IsValid(vi), op, "invalid vertex instance %d", vi)
	}
}

func (md *MeshDescription) createPolygonEdges(perimeter []VertexInstanceID, newEdges *[]EdgeID) {
	n := len(perimeter)
	for i := range n {
		v0 := md.GetVertexInstanceVertex(perimeter[i])
		v1 := md.GetVertexInstanceVertex(perimeter[(i+1)%n])
		if md.GetVertexPairEdge(v0, v1) != InvalidEdgeID {
			continue
		}
		e := md.CreateEdge(v0, v1)
		if newEdges != nil {
			*newEdges = append(*newEdges, e)
		}
	}
}

// connectTriangle registers triangle id with its vertex instances and with
// the edges along its sides, creating missing edges.
func (md *MeshDescription) connectTriangle(id TriangleID, newEdges *[]EdgeID) {
	corners := md.triangles.Get(id).corners
	for i := range 3 {
		v0 := md.GetVertexInstanceVertex(corners[i])
		v1 := md.GetVertexInstanceVertex(corners[(i+1)%3])
		e := md.GetVertexPairEdge(v0, v1)
		if e == InvalidEdgeID {
			e = md.CreateEdge(v0, v1)
			if newEdges != nil {
				*newEdges = append(*newEdges, e)
			}
		}
		ed := md.edges.Get(e)
		ed.triangles = addUnique(ed.triangles, id)
	}
	for _, vi := range corners {
		if inst := md.vertexInstances.Get(vi); inst != nil {
			inst.triangles = addUnique(inst.triangles, id)
		}
	}
}

package meshdesc

import (
	"slices"

	"github.com/hupe1980/meshdesc/core"
)

// Re-exported element ID types.
type (
	VertexID         = core.VertexID
	VertexInstanceID = core.VertexInstanceID
	EdgeID           = core.EdgeID
	TriangleID       = core.TriangleID
	PolygonID        = core.PolygonID
	PolygonGroupID   = core.PolygonGroupID
)

// Invalid ID sentinels.
const (
	InvalidVertexID         = core.InvalidVertexID
	InvalidVertexInstanceID = core.InvalidVertexInstanceID
	InvalidEdgeID           = core.InvalidEdgeID
	InvalidTriangleID       = core.InvalidTriangleID
	InvalidPolygonID        = core.InvalidPolygonID
	InvalidPolygonGroupID   = core.InvalidPolygonGroupID
)

type vertex struct {
	instances []VertexInstanceID
	edges     []EdgeID
}

type vertexInstance struct {
	vertex    VertexID
	triangles []TriangleID
}

type edge struct {
	vertices  [2]VertexID
	triangles []TriangleID
}

type triangle struct {
	corners [3]VertexInstanceID
	polygon PolygonID
}

type polygon struct {
	perimeter []VertexInstanceID
	triangles []TriangleID
	group     PolygonGroupID
}

type polygonGroup struct {
	polygons []PolygonID
}

// Orphans collects elements left without references by a deletion.
// Orphans are reported, not deleted; DeletePolygons and DeleteTriangles
// delete them in a cascade.
type Orphans struct {
	Edges           []EdgeID
	VertexInstances []VertexInstanceID
	PolygonGroups   []PolygonGroupID
	Vertices        []VertexID
}

// Len returns the total number of collected IDs.
func (o *Orphans) Len() int {
	return len(o.Edges) + len(o.VertexInstances) + len(o.PolygonGroups) + len(o.Vertices)
}

func (o *Orphans) addEdge(id EdgeID) {
	if o != nil {
		o.Edges = addUnique(o.Edges, id)
	}
}

func (o *Orphans) addVertexInstance(id VertexInstanceID) {
	if o != nil {
		o.VertexInstances = addUnique(o.VertexInstances, id)
	}
}

func (o *Orphans) addPolygonGroup(id PolygonGroupID) {
	if o != nil {
		o.PolygonGroups = addUnique(o.PolygonGroups, id)
	}
}

func (o *Orphans) addVertex(id VertexID) {
	if o != nil {
		o.Vertices = addUnique(o.Vertices, id)
	}
}

func addUnique[T comparable](s []T, v T) []T {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}

// removeSingle removes the first occurrence of v, preserving order.
func removeSingle[T comparable](s []T, v T) ([]T, bool) {
	i := slices.Index(s, v)
	if i < 0 {
		return s, false
	}
	return slices.Delete(s, i, i+1), true
}

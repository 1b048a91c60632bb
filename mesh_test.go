package meshdesc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshdesc/attribute"
	"github.com/hupe1980/meshdesc/core"
	"github.com/hupe1980/meshdesc/geom"
)

func TestNew(t *testing.T) {
	md := New()
	assert.True(t, md.IsEmpty())
	assert.True(t, md.VertexPositions().IsValid())
	assert.True(t, md.VertexAttributes().Flags(VertexAttributePosition).Has(attribute.FlagMandatory))

	bare := New(WithoutDefaultAttributes())
	assert.False(t, bare.VertexPositions().IsValid())
}

func TestCreateDeleteValidity(t *testing.T) {
	md := New()

	v0 := md.CreateVertex()
	v1 := md.CreateVertex()
	assert.True(t, md.IsVertexValid(v0))

	vi := md.CreateVertexInstance(v0)
	assert.True(t, md.IsVertexInstanceValid(vi))
	assert.Equal(t, v0, md.GetVertexInstanceVertex(vi))

	e := md.CreateEdge(v0, v1)
	assert.True(t, md.IsEdgeValid(e))

	g := md.CreatePolygonGroup()
	assert.True(t, md.IsPolygonGroupValid(g))

	var orphans Orphans
	md.DeleteEdge(e, &orphans)
	assert.False(t, md.IsEdgeValid(e))
	assert.Equal(t, []VertexID{v1}, orphans.Vertices)

	md.DeleteVertexInstance(vi, &orphans)
	assert.False(t, md.IsVertexInstanceValid(vi))
	assert.ElementsMatch(t, []VertexID{v0, v1}, orphans.Vertices)

	md.DeleteVertex(v0)
	md.DeleteVertex(v1)
	assert.False(t, md.IsVertexValid(v0))
	assert.False(t, md.IsVertexValid(v1))

	md.DeletePolygonGroup(g)
	assert.False(t, md.IsPolygonGroupValid(g))
	assert.Equal(t, 0, md.NumVertices())
}

func TestCreateTriangle(t *testing.T) {
	md := New()
	g := md.CreatePolygonGroup()
	var corners [3]VertexInstanceID
	for i, p := range []geom.Vector3{{X: 0}, {X: 1}, {Y: 1}} {
		corners[i] = md.CreateVertexInstance(newVertexAt(md, p))
	}

	var newEdges []EdgeID
	tri := md.CreateTriangle(g, corners, &newEdges)
	assert.True(t, md.IsTriangleValid(tri))
	assert.Len(t, newEdges, 3)

	p := md.GetTrianglePolygon(tri)
	assert.True(t, md.IsPolygonValid(p))
	assert.Equal(t, corners[:], md.GetPolygonVertexInstances(p))
	assert.Equal(t, []TriangleID{tri}, md.GetPolygonTriangles(p))
	assert.False(t, md.IsTrianglePartOfNgon(tri))
	requireConsistent(t, md)

	var orphans Orphans
	md.DeleteTriangle(tri, &orphans)
	assert.False(t, md.IsTriangleValid(tri))
	assert.False(t, md.IsPolygonValid(p))
	assert.Len(t, orphans.Edges, 3)
	assert.Len(t, orphans.VertexInstances, 3)
	assert.Equal(t, []PolygonGroupID{g}, orphans.PolygonGroups)
}

func TestUnitSquareScenario(t *testing.T) {
	md := New()
	g := md.CreatePolygonGroup()

	verts := make([]VertexID, 4)
	corners := make([]VertexInstanceID, 4)
	for i, p := range unitSquare() {
		verts[i] = newVertexAt(md, p)
		corners[i] = md.CreateVertexInstance(verts[i])
	}

	var newEdges []EdgeID
	p := md.CreatePolygon(g, corners, &newEdges)

	assert.Len(t, md.GetPolygonTriangles(p), 2)
	assert.Len(t, newEdges, 4)
	assert.Len(t, md.GetPolygonPerimeterEdges(p), 4)
	assert.Len(t, md.GetPolygonInternalEdges(p), 1)
	assert.Equal(t, 5, md.NumEdges())
	for _, tid := range md.GetPolygonTriangles(p) {
		assert.True(t, md.IsTrianglePartOfNgon(tid))
	}
	requireConsistent(t, md)

	var orphans Orphans
	md.DeletePolygon(p, &orphans)

	assert.Equal(t, 0, md.NumTriangles())
	assert.Equal(t, 0, md.NumPolygons())
	assert.ElementsMatch(t, newEdges, orphans.Edges)
	assert.ElementsMatch(t, corners, orphans.VertexInstances)
	assert.Equal(t, []PolygonGroupID{g}, orphans.PolygonGroups)
	assert.Empty(t, orphans.Vertices)
	assert.Equal(t, 4, md.NumEdges())
	for _, v := range verts {
		assert.True(t, md.IsVertexOrphaned(v))
	}
}

func TestDeletePolygonsCascade(t *testing.T) {
	md := New()
	g := md.CreatePolygonGroup()
	p, verts := newPolygonAt(md, g, unitSquare()...)

	deleted := md.DeletePolygons([]PolygonID{p})

	assert.Len(t, deleted.Edges, 4)
	assert.Len(t, deleted.VertexInstances, 4)
	assert.Equal(t, []PolygonGroupID{g}, deleted.PolygonGroups)
	assert.ElementsMatch(t, verts, deleted.Vertices)
	assert.Equal(t, 0, md.NumVertices())
	assert.Equal(t, 0, md.NumVertexInstances())
	assert.Equal(t, 0, md.NumEdges())
	assert.Equal(t, 0, md.NumPolygonGroups())
}

func TestDeletePolygonsKeepsSharedElements(t *testing.T) {
	md := New()
	g, polys := buildGrid(md, 2, 1)

	deleted := md.DeletePolygons(polys[:1])

	// The shared edge and its two vertices are still used by the other quad.
	assert.Len(t, deleted.Edges, 3)
	assert.Len(t, deleted.Vertices, 2)
	assert.Empty(t, deleted.PolygonGroups)
	assert.True(t, md.IsPolygonGroupValid(g))
	assert.Equal(t, 4, md.NumVertices())
	assert.Equal(t, 5, md.NumEdges())
	requireConsistent(t, md)
}

func TestDeleteTriangles(t *testing.T) {
	md := New()
	g := md.CreatePolygonGroup()
	var tris []TriangleID
	v := []VertexID{
		newVertexAt(md, geom.Vec3(0, 0, 0)),
		newVertexAt(md, geom.Vec3(1, 0, 0)),
		newVertexAt(md, geom.Vec3(1, 1, 0)),
		newVertexAt(md, geom.Vec3(0, 1, 0)),
	}
	for _, c := range [][3]int{{0, 1, 2}, {0, 2, 3}} {
		var corners [3]VertexInstanceID
		for i, k := range c {
			corners[i] = md.CreateVertexInstance(v[k])
		}
		tris = append(tris, md.CreateTriangle(g, corners, nil))
	}
	assert.Equal(t, 5, md.NumEdges())
	assert.Len(t, md.GetTriangleAdjacentTriangles(tris[0]), 1)

	deleted := md.DeleteTriangles(tris)
	assert.Len(t, deleted.Edges, 5)
	assert.Len(t, deleted.Vertices, 4)
	assert.Equal(t, 0, md.NumVertices())
	assert.Equal(t, 0, md.NumEdges())
}

func TestDeleteTriangleOfNgonPanics(t *testing.T) {
	md := New()
	p, _ := newPolygonAt(md, md.CreatePolygonGroup(), unitSquare()...)
	tri := md.GetPolygonTriangles(p)[0]

	requireContractPanic(t, func() { md.DeleteTriangle(tri, nil) })
	assert.Len(t, md.GetPolygonTriangles(p), 2)
	assert.True(t, md.IsTriangleValid(tri))
	assert.Equal(t, p, md.GetTrianglePolygon(tri))
}

func TestDeleteChecksBackReferences(t *testing.T) {
	md := New()
	g := md.CreatePolygonGroup()
	p, _ := newPolygonAt(md, g, unitSquare()...)

	md.polygonGroups.Get(g).polygons = nil
	requireContractPanic(t, func() { md.DeletePolygon(p, nil) })

	md = New()
	v := md.CreateVertex()
	vi := md.CreateVertexInstance(v)
	md.vertices.Get(v).instances = nil
	requireContractPanic(t, func() { md.DeleteVertexInstance(vi, nil) })
}

func TestDeleteSelfLoopEdge(t *testing.T) {
	md := New()
	v := md.CreateVertex()
	e := md.CreateEdge(v, v)
	assert.Equal(t, []EdgeID{e}, md.GetVertexConnectedEdges(v))

	orphans := &Orphans{}
	assert.NotPanics(t, func() { md.DeleteEdge(e, orphans) })
	assert.Empty(t, md.GetVertexConnectedEdges(v))
	assert.Equal(t, []VertexID{v}, orphans.Vertices)
}

func TestContractViolations(t *testing.T) {
	md := New()
	v0 := md.CreateVertex()
	v1 := md.CreateVertex()
	md.CreateEdge(v0, v1)

	requireContractPanic(t, func() { md.CreateEdge(v1, v0) })
	requireContractPanic(t, func() { md.DeleteVertex(v0) })
	requireContractPanic(t, func() { md.CreateVertexWithID(v0) })
	requireContractPanic(t, func() { md.CreateVertexInstance(VertexID(42)) })

	g := md.CreatePolygonGroup()
	requireContractPanic(t, func() {
		md.CreatePolygon(g, []VertexInstanceID{md.CreateVertexInstance(v0)}, nil)
	})

	t.Run("assertions disabled", func(t *testing.T) {
		md := New(WithAssertions(false))
		v0 := md.CreateVertex()
		v1 := md.CreateVertex()
		md.CreateEdge(v0, v1)
		assert.NotPanics(t, func() { md.DeleteVertex(VertexID(99)) })
	})
}

func TestCreateWithID(t *testing.T) {
	md := New()
	md.CreateVertexWithID(3)
	assert.True(t, md.IsVertexValid(3))
	assert.False(t, md.IsVertexValid(0))
	assert.Equal(t, 1, md.NumVertices())
	assert.Equal(t, 4, md.VertexAttributes().NumElements())

	// Holes below an explicit ID are reused first.
	assert.Equal(t, VertexID(0), md.CreateVertex())

	md.CreateVertexInstanceWithID(5, 3)
	assert.Equal(t, []VertexInstanceID{5}, md.GetVertexVertexInstances(3))

	md.CreatePolygonGroupWithID(2)
	assert.True(t, md.IsPolygonGroupValid(2))
}

func TestVertexPairEdgeSymmetry(t *testing.T) {
	md := New()
	verts := make([]VertexID, 5)
	for i := range verts {
		verts[i] = md.CreateVertex()
	}
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			e := md.CreateEdge(verts[i], verts[j])
			assert.Equal(t, e, md.GetVertexPairEdge(verts[i], verts[j]))
			assert.Equal(t, e, md.GetVertexPairEdge(verts[j], verts[i]))
		}
	}
	assert.Len(t, md.GetVertexAdjacentVertices(verts[0]), 4)
	assert.Equal(t, InvalidEdgeID, md.GetVertexPairEdge(verts[0], VertexID(77)))
}

func TestAdjacencySymmetryOnGrid(t *testing.T) {
	md := New()
	_, polys := buildGrid(md, 3, 3)
	requireConsistent(t, md)

	assert.Equal(t, 16, md.NumVertices())
	assert.Equal(t, 36, md.NumVertexInstances())
	assert.Equal(t, 18, md.NumTriangles())
	// 24 grid edges plus one diagonal per quad.
	assert.Equal(t, 33, md.NumEdges())

	center := polys[4]
	assert.Len(t, md.GetPolygonAdjacentPolygons(center), 4)
	assert.Len(t, md.GetPolygonAdjacentPolygons(polys[0]), 2)

	for _, e := range md.EdgeIDs() {
		for _, tid := range md.GetEdgeConnectedTriangles(e) {
			assert.Contains(t, md.GetTriangleEdges(tid), e)
		}
	}
	for _, tid := range md.TriangleIDs() {
		for _, e := range md.GetTriangleEdges(tid) {
			assert.Contains(t, md.GetEdgeConnectedTriangles(e), tid)
		}
	}

	// The interior vertex (1,1) is shared by four quads.
	v := md.GetPolygonVertices(center)[0]
	assert.Len(t, md.GetVertexConnectedPolygons(v), 4)
	assert.Len(t, md.GetVertexVertexInstances(v), 4)
	assert.Len(t, md.GetVertexAdjacentVertices(v), 6)
	assert.NotEqual(t, InvalidVertexInstanceID, md.GetVertexInstanceForPolygonVertex(center, v))
}

func TestQueriesOnInvalidIDs(t *testing.T) {
	md := New()
	assert.Nil(t, md.GetVertexConnectedEdges(5))
	assert.Nil(t, md.GetPolygonTriangles(5))
	assert.Equal(t, InvalidVertexID, md.GetVertexInstanceVertex(5))
	assert.Equal(t, InvalidPolygonID, md.GetTrianglePolygon(5))
	assert.Equal(t, InvalidPolygonGroupID, md.GetPolygonPolygonGroup(5))
	assert.False(t, md.IsEdgeInternal(5))
	assert.False(t, md.IsVertexOrphaned(5))
	assert.Equal(t, float32(0), md.GetPolygonCornerAngleForVertex(5, 0))
}

func TestSetPolygonVertexInstance(t *testing.T) {
	md := New()
	p, verts := newPolygonAt(md, md.CreatePolygonGroup(), unitSquare()...)
	old := md.GetPolygonVertexInstances(p)[0]
	vi := md.CreateVertexInstance(verts[0])

	md.SetPolygonVertexInstance(p, 0, vi)

	assert.Equal(t, vi, md.GetPolygonVertexInstances(p)[0])
	assert.Empty(t, md.GetVertexInstanceConnectedTriangles(old))
	assert.NotEmpty(t, md.GetVertexInstanceConnectedTriangles(vi))
	requireConsistent(t, md)

	other := md.CreateVertexInstance(verts[1])
	requireContractPanic(t, func() { md.SetPolygonVertexInstance(p, 0, other) })
}

func TestSetPolygonPolygonGroup(t *testing.T) {
	md := New()
	g0 := md.CreatePolygonGroup()
	g1 := md.CreatePolygonGroup()
	p, _ := newPolygonAt(md, g0, unitSquare()...)

	md.SetPolygonPolygonGroup(p, g1)
	assert.Equal(t, g1, md.GetPolygonPolygonGroup(p))
	assert.Empty(t, md.GetPolygonGroupPolygons(g0))
	assert.Equal(t, []PolygonID{p}, md.GetPolygonGroupPolygons(g1))
}

func TestReversePolygonFacing(t *testing.T) {
	md := New()
	p, _ := newPolygonAt(md, md.CreatePolygonGroup(), unitSquare()...)
	assert.InDelta(t, 1, md.ComputePolygonNormal(p).Z, 1e-6)

	md.ReverseAllPolygonFacing()
	assert.InDelta(t, -1, md.ComputePolygonNormal(p).Z, 1e-6)

	pos := md.VertexPositions()
	for _, tid := range md.GetPolygonTriangles(p) {
		vs := md.GetTriangleVertices(tid)
		a, b, c := pos.Get(vs[0]), pos.Get(vs[1]), pos.Get(vs[2])
		assert.Less(t, b.Sub(a).Cross(c.Sub(a)).Z, float32(0))
	}
	requireConsistent(t, md)
}

func TestRemapPolygonGroups(t *testing.T) {
	md := New()
	RegisterStandardAttributes(md, 1)
	names := md.PolygonGroupMaterialSlotNames()

	g0 := md.CreatePolygonGroup()
	g1 := md.CreatePolygonGroup()
	names.Set(g0, "wood")
	names.Set(g1, "stone")
	p0, _ := newPolygonAt(md, g0, unitSquare()...)
	p1, _ := newPolygonAt(md, g1, unitSquare()...)

	md.RemapPolygonGroups(map[PolygonGroupID]PolygonGroupID{g1: g0})
	assert.False(t, md.IsPolygonGroupValid(g1))
	assert.ElementsMatch(t, []PolygonID{p0, p1}, md.GetPolygonGroupPolygons(g0))
	assert.Equal(t, g0, md.GetPolygonPolygonGroup(p1))
	assert.Equal(t, "stone", names.Get(g0))

	// Mapping onto a group that does not exist creates it.
	md.RemapPolygonGroups(map[PolygonGroupID]PolygonGroupID{g0: 7})
	assert.True(t, md.IsPolygonGroupValid(7))
	assert.False(t, md.IsPolygonGroupValid(g0))
	assert.Len(t, md.GetPolygonGroupPolygons(7), 2)
	assert.Equal(t, "stone", names.Get(7))
	requireConsistent(t, md)
}

func TestVertexAttributeChannelsDefaultToZero(t *testing.T) {
	md := New()
	ref := attribute.Register(md.VertexAttributes(), "Weights", 3, float32(0), attribute.FlagNone)

	for range 5 {
		md.CreateVertex()
	}
	require.Equal(t, 5, ref.NumElements())
	for _, v := range md.VertexIDs() {
		for ch := range 3 {
			assert.Equal(t, float32(0), ref.GetChannel(v, ch))
		}
	}
}

func TestEmptyAndClone(t *testing.T) {
	md := New()
	buildGrid(md, 2, 2)

	c := md.Clone()
	md.Empty()
	assert.True(t, md.IsEmpty())
	assert.True(t, md.VertexPositions().IsValid())
	assert.Equal(t, 0, md.VertexAttributes().NumElements())

	assert.Equal(t, 9, c.NumVertices())
	assert.Equal(t, 4, c.NumPolygons())
	requireConsistent(t, c)
	assert.Equal(t, geom.Vec3(2, 2, 0), c.VertexPositions().Get(8))
}

func TestGeometryQueries(t *testing.T) {
	md := New()
	p, verts := newPolygonAt(md, md.CreatePolygonGroup(), unitSquare()...)
	orphan := newVertexAt(md, geom.Vec3(10, 10, 10))

	plane := md.ComputePolygonPlane(p)
	assert.InDelta(t, 1, plane.Normal.Z, 1e-6)
	assert.InDelta(t, 0, plane.W, 1e-6)
	assert.Equal(t, geom.Vec3(0.5, 0.5, 0), md.ComputePolygonCenter(p))

	assert.InDelta(t, math.Pi/2, md.GetPolygonCornerAngleForVertex(p, verts[0]), 1e-5)
	assert.Equal(t, float32(0), md.GetPolygonCornerAngleForVertex(p, orphan))

	box := md.ComputeBoundingBox()
	assert.Equal(t, geom.Vec3(10, 10, 10), box.Max)

	bounds := md.GetBounds()
	assert.Equal(t, geom.Vec3(0.5, 0.5, 0), bounds.Origin)
	assert.Equal(t, geom.Vec3(0.5, 0.5, 0), bounds.BoxExtent)
	assert.InDelta(t, math.Sqrt(0.5), bounds.SphereRadius, 1e-6)
}

func TestMetricsCollector(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	md := New(WithMetricsCollector(metrics), WithLogger(NoopLogger()))
	p, _ := newPolygonAt(md, md.CreatePolygonGroup(), unitSquare()...)
	md.DeletePolygons([]PolygonID{p})

	stats := metrics.GetStats()
	assert.Equal(t, int64(4), stats.Created[core.KindVertex])
	assert.Equal(t, int64(5), stats.Created[core.KindEdge])
	assert.Equal(t, int64(2), stats.Created[core.KindTriangle])
	assert.Equal(t, int64(1), stats.Created[core.KindPolygon])
	assert.Equal(t, int64(5), stats.Deleted[core.KindEdge])
	assert.Equal(t, int64(4), stats.Deleted[core.KindVertex])
	assert.Equal(t, int64(1), stats.TriangulatedPolygons)
	assert.Equal(t, int64(2), stats.Triangles)
}

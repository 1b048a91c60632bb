package meshdesc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshdesc/attribute"
	"github.com/hupe1980/meshdesc/core"
	"github.com/hupe1980/meshdesc/geom"
)

func TestCompact(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	md := New(WithMetricsCollector(metrics))
	_, polys := buildGrid(md, 3, 1)
	md.DeletePolygons(polys[:1])

	positions := make(map[VertexID]geom.Vector3)
	for _, v := range md.VertexIDs() {
		positions[v] = md.VertexPositions().Get(v)
	}
	counts := []int{md.NumVertices(), md.NumVertexInstances(), md.NumEdges(), md.NumTriangles(), md.NumPolygons()}
	require.Less(t, md.NumVertices(), md.vertices.ArraySize())

	r := md.Compact()
	assert.False(t, r.IsIdentity())

	assert.Equal(t, counts, []int{md.NumVertices(), md.NumVertexInstances(), md.NumEdges(), md.NumTriangles(), md.NumPolygons()})
	assert.Equal(t, md.NumVertices(), md.vertices.ArraySize())
	assert.Equal(t, md.NumVertexInstances(), md.vertexInstances.ArraySize())
	assert.Equal(t, md.NumEdges(), md.edges.ArraySize())
	assert.Equal(t, md.NumTriangles(), md.triangles.ArraySize())
	assert.Equal(t, md.NumPolygons(), md.polygons.ArraySize())
	assert.Equal(t, md.NumVertices(), md.VertexAttributes().NumElements())

	for old, p := range positions {
		assert.Equal(t, p, md.VertexPositions().Get(r.Vertex(old)))
	}
	requireConsistent(t, md)

	assert.True(t, md.Compact().IsIdentity())
	assert.Equal(t, int64(2), metrics.GetStats().CompactCount)
}

func TestCompactKeepsPolygonOrderInGroups(t *testing.T) {
	md := New()
	g, polys := buildGrid(md, 4, 1)
	md.DeletePolygons([]PolygonID{polys[1]})

	r := md.Compact()
	want := []PolygonID{r.Polygon(polys[0]), r.Polygon(polys[2]), r.Polygon(polys[3])}
	assert.Equal(t, want, md.GetPolygonGroupPolygons(r.PolygonGroup(g)))
	assert.Equal(t, []PolygonID{0, 1, 2}, want)
}

func TestRemap(t *testing.T) {
	md := New()
	v0 := newVertexAt(md, geom.Vec3(1, 0, 0))
	v1 := newVertexAt(md, geom.Vec3(2, 0, 0))
	e := md.CreateEdge(v0, v1)
	vi := md.CreateVertexInstance(v1)

	md.Remap(ElementIDRemappings{Vertices: core.IndexRemap{1, 0}})

	assert.Equal(t, geom.Vec3(2, 0, 0), md.VertexPositions().Get(0))
	assert.Equal(t, geom.Vec3(1, 0, 0), md.VertexPositions().Get(1))
	assert.Equal(t, [2]VertexID{1, 0}, md.GetEdgeVertices(e))
	assert.Equal(t, VertexID(0), md.GetVertexInstanceVertex(vi))
	assert.Equal(t, []VertexInstanceID{vi}, md.GetVertexVertexInstances(0))
	requireConsistent(t, md)
}

func TestCreateWithIDAfterCompact(t *testing.T) {
	md := New()
	for range 200 {
		md.CreateVertex()
	}
	for i := range 150 {
		md.DeleteVertex(VertexID(i))
	}
	md.Compact()

	md.CreateVertexWithID(199)
	assert.Equal(t, 51, md.NumVertices())
	assert.False(t, md.IsVertexValid(160))
	assert.Len(t, md.VertexIDs(), 51)

	var buf bytes.Buffer
	require.NoError(t, md.Save(&buf))
	loaded := New()
	require.NoError(t, loaded.Load(&buf))
	assert.Equal(t, md.VertexIDs(), loaded.VertexIDs())
}

func TestIndexReferenceAttributeRemap(t *testing.T) {
	md := New()
	for range 4 {
		md.CreateVertex()
	}
	next := attribute.Register(md.VertexAttributes(), "Next", 1, int32(-1), attribute.FlagIndexReference)
	next.Set(3, 2)
	md.DeleteVertex(0)
	md.DeleteVertex(1)

	r := md.Compact()
	attribute.RemapValues(next, r.Vertices)
	assert.Equal(t, int32(0), next.Get(1))
}

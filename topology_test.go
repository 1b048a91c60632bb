package meshdesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshdesc/attribute"
	"github.com/hupe1980/meshdesc/geom"
)

// sharedEdge returns the edge shared by the two quads of a 2×1 grid.
func sharedEdge(t *testing.T, md *MeshDescription, polys []PolygonID) EdgeID {
	t.Helper()
	for _, e := range md.GetPolygonPerimeterEdges(polys[0]) {
		if md.NumEdgeConnectedPolygons(e) == 2 {
			return e
		}
	}
	require.FailNow(t, "no shared edge")
	return InvalidEdgeID
}

func TestDetermineEdgeHardness(t *testing.T) {
	md := New()
	RegisterStandardAttributes(md, 1)
	_, polys := buildGrid(md, 2, 1)
	shared := sharedEdge(t, md, polys)
	hard := attribute.GetRef[bool](md.EdgeAttributes(), EdgeAttributeIsHard)

	md.ComputeVertexInstanceNormalsFromPolygons()
	for _, vi := range md.VertexInstanceIDs() {
		assert.InDelta(t, 1, md.VertexInstanceNormals().Get(vi).Z, 1e-6)
	}

	md.DetermineEdgeHardnessesFromVertexInstanceNormals(1e-4)
	assert.False(t, hard.Get(shared))
	for _, e := range md.GetPolygonPerimeterEdges(polys[0]) {
		if e != shared {
			assert.True(t, hard.Get(e), "border edge %d", e)
		}
	}

	for _, vi := range md.GetPolygonVertexInstances(polys[1]) {
		md.VertexInstanceNormals().Set(vi, geom.Vec3(1, 0, 0))
	}
	md.DetermineEdgeHardnessesFromVertexInstanceNormals(1e-4)
	assert.True(t, hard.Get(shared))
}

func TestUVSeamsAndCharts(t *testing.T) {
	md := New()
	RegisterStandardAttributes(md, 1)
	_, polys := buildGrid(md, 2, 1)
	shared := sharedEdge(t, md, polys)
	uvs := md.VertexInstanceUVs()
	seams := attribute.GetRef[bool](md.EdgeAttributes(), EdgeAttributeIsUVSeam)

	setUVs := func(p PolygonID, offset float32) {
		for _, vi := range md.GetPolygonVertexInstances(p) {
			pos := md.VertexPositions().Get(md.GetVertexInstanceVertex(vi))
			uvs.Set(vi, geom.Vec2(pos.X+offset, pos.Y))
		}
	}
	setUVs(polys[0], 0)
	setUVs(polys[1], 0)

	md.DetermineUVSeamsFromUVs(0, 1e-4)
	assert.False(t, seams.Get(shared))
	assert.Len(t, md.GetAllCharts(), 1)
	assert.ElementsMatch(t, polys, md.GetPolygonsInSameChartAsPolygon(polys[0]))

	setUVs(polys[1], 5)
	md.DetermineUVSeamsFromUVs(0, 1e-4)
	assert.True(t, seams.Get(shared))
	assert.Equal(t, [][]PolygonID{{polys[0]}, {polys[1]}}, md.GetAllCharts())
	assert.Equal(t, []PolygonID{polys[1]}, md.GetPolygonsInSameChartAsPolygon(polys[1]))

	// Out of range channels leave the seams alone.
	md.DetermineUVSeamsFromUVs(3, 1e-4)
	assert.True(t, seams.Get(shared))
}

func TestChartsWithoutSeamAttribute(t *testing.T) {
	md := New()
	_, polys := buildGrid(md, 3, 3)
	newPolygonAt(md, md.CreatePolygonGroup(), unitSquare()...)

	charts := md.GetAllCharts()
	require.Len(t, charts, 2)
	assert.ElementsMatch(t, polys, charts[0])
	assert.Nil(t, md.GetPolygonsInSameChartAsPolygon(PolygonID(100)))
}

func TestComputeVertexInstanceNormalsRegistersAttribute(t *testing.T) {
	md := New()
	p, _ := newPolygonAt(md, md.CreatePolygonGroup(),
		geom.Vec3(0, 0, 0), geom.Vec3(0, 0, 1), geom.Vec3(0, 1, 0))
	require.False(t, md.VertexInstanceNormals().IsValid())

	md.ComputeVertexInstanceNormalsFromPolygons()
	normals := md.VertexInstanceNormals()
	require.True(t, normals.IsValid())
	for _, vi := range md.GetPolygonVertexInstances(p) {
		assert.InDelta(t, -1, normals.Get(vi).X, 1e-6)
	}
}

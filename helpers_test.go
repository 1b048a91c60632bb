package meshdesc

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshdesc/geom"
)

// newVertexAt creates a vertex at p.
func newVertexAt(md *MeshDescription, p geom.Vector3) VertexID {
	v := md.CreateVertex()
	md.VertexPositions().Set(v, p)
	return v
}

// newPolygonAt creates one vertex and one instance per point and a polygon
// over them.
func newPolygonAt(md *MeshDescription, g PolygonGroupID, points ...geom.Vector3) (PolygonID, []VertexID) {
	verts := make([]VertexID, len(points))
	corners := make([]VertexInstanceID, len(points))
	for i, p := range points {
		verts[i] = newVertexAt(md, p)
		corners[i] = md.CreateVertexInstance(verts[i])
	}
	return md.CreatePolygon(g, corners, nil), verts
}

func unitSquare() []geom.Vector3 {
	return []geom.Vector3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

// buildGrid creates a w×h grid of unit quads in the XY plane sharing
// vertices but with one vertex instance per polygon corner.
func buildGrid(md *MeshDescription, w, h int) (PolygonGroupID, []PolygonID) {
	g := md.CreatePolygonGroup()
	verts := make([]VertexID, (w+1)*(h+1))
	for y := range h + 1 {
		for x := range w + 1 {
			verts[y*(w+1)+x] = newVertexAt(md, geom.Vec3(float32(x), float32(y), 0))
		}
	}

	polys := make([]PolygonID, 0, w*h)
	for y := range h {
		for x := range w {
			quad := []VertexID{
				verts[y*(w+1)+x],
				verts[y*(w+1)+x+1],
				verts[(y+1)*(w+1)+x+1],
				verts[(y+1)*(w+1)+x],
			}
			corners := make([]VertexInstanceID, 4)
			for i, v := range quad {
				corners[i] = md.CreateVertexInstance(v)
			}
			polys = append(polys, md.CreatePolygon(g, corners, nil))
		}
	}
	return g, polys
}

// requireConsistent checks every forward reference against its back-reference.
func requireConsistent(t *testing.T, md *MeshDescription) {
	t.Helper()

	for id, v := range md.vertices.All() {
		for _, vi := range v.instances {
			require.True(t, md.IsVertexInstanceValid(vi))
			require.Equal(t, id, md.GetVertexInstanceVertex(vi))
		}
		for _, e := range v.edges {
			require.True(t, md.IsEdgeValid(e))
			require.Contains(t, md.GetEdgeVertices(e), id)
		}
	}

	for id, vi := range md.vertexInstances.All() {
		require.True(t, md.IsVertexValid(vi.vertex))
		require.Contains(t, md.GetVertexVertexInstances(vi.vertex), id)
		for _, tid := range vi.triangles {
			require.Contains(t, md.GetTriangleVertexInstances(tid), id)
		}
	}

	for id, e := range md.edges.All() {
		for _, v := range e.vertices {
			require.Contains(t, md.GetVertexConnectedEdges(v), id)
		}
		for _, tid := range e.triangles {
			require.Contains(t, md.GetTriangleEdges(tid), id)
		}
	}

	for id, tri := range md.triangles.All() {
		require.Contains(t, md.GetPolygonTriangles(tri.polygon), id)
		for _, vi := range tri.corners {
			require.Contains(t, md.GetVertexInstanceConnectedTriangles(vi), id)
		}
		for _, e := range md.GetTriangleEdges(id) {
			require.NotEqual(t, InvalidEdgeID, e)
			require.Contains(t, md.GetEdgeConnectedTriangles(e), id)
		}
	}

	for id, p := range md.polygons.All() {
		require.Len(t, p.triangles, len(p.perimeter)-2)
		require.Contains(t, md.GetPolygonGroupPolygons(p.group), id)

		var used []VertexInstanceID
		for _, tid := range p.triangles {
			for _, vi := range md.GetTriangleVertexInstances(tid) {
				if !slices.Contains(used, vi) {
					used = append(used, vi)
				}
			}
		}
		require.ElementsMatch(t, p.perimeter, used)
	}

	for id, g := range md.polygonGroups.All() {
		for _, p := range g.polygons {
			require.Equal(t, id, md.GetPolygonPolygonGroup(p))
		}
	}
}

// requireContractPanic asserts that f panics with a *ContractError.
func requireContractPanic(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a contract panic")
		assert.True(t, IsContractError(r), "unexpected panic value %v", r)
	}()
	f()
}

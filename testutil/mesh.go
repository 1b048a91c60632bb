package testutil

import (
	"math"

	"github.com/hupe1980/meshdesc"
	"github.com/hupe1980/meshdesc/geom"
)

// Vertex creates a vertex at p.
func Vertex(md *meshdesc.MeshDescription, p geom.Vector3) meshdesc.VertexID {
	v := md.CreateVertex()
	md.VertexPositions().Set(v, p)
	return v
}

// Face creates one vertex instance per vertex and a polygon over them.
func Face(md *meshdesc.MeshDescription, g meshdesc.PolygonGroupID, verts ...meshdesc.VertexID) meshdesc.PolygonID {
	corners := make([]meshdesc.VertexInstanceID, len(verts))
	for i, v := range verts {
		corners[i] = md.CreateVertexInstance(v)
	}
	return md.CreatePolygon(g, corners, nil)
}

// Grid creates a w×h grid of unit quads in the XY plane facing +Z. Quads
// share vertices; every corner gets its own vertex instance.
func Grid(md *meshdesc.MeshDescription, w, h int) (meshdesc.PolygonGroupID, []meshdesc.PolygonID) {
	g := md.CreatePolygonGroup()
	verts := make([]meshdesc.VertexID, (w+1)*(h+1))
	for y := range h + 1 {
		for x := range w + 1 {
			verts[y*(w+1)+x] = Vertex(md, geom.Vec3(float32(x), float32(y), 0))
		}
	}

	polys := make([]meshdesc.PolygonID, 0, w*h)
	for y := range h {
		for x := range w {
			polys = append(polys, Face(md, g,
				verts[y*(w+1)+x],
				verts[y*(w+1)+x+1],
				verts[(y+1)*(w+1)+x+1],
				verts[(y+1)*(w+1)+x],
			))
		}
	}
	return g, polys
}

// Cube creates an axis-aligned cube of the given edge length centred on the
// origin: 8 vertices, 6 outward-facing quads and 12 perimeter edges.
func Cube(md *meshdesc.MeshDescription, size float32) (meshdesc.PolygonGroupID, []meshdesc.PolygonID) {
	h := size / 2
	g := md.CreatePolygonGroup()

	var v [8]meshdesc.VertexID
	for i := range v {
		x, y, z := -h, -h, -h
		if i&1 != 0 {
			x = h
		}
		if i&2 != 0 {
			y = h
		}
		if i&4 != 0 {
			z = h
		}
		v[i] = Vertex(md, geom.Vec3(x, y, z))
	}

	faces := [6][4]int{
		{0, 2, 3, 1}, // -Z
		{4, 5, 7, 6}, // +Z
		{0, 1, 5, 4}, // -Y
		{2, 6, 7, 3}, // +Y
		{0, 4, 6, 2}, // -X
		{1, 3, 7, 5}, // +X
	}
	polys := make([]meshdesc.PolygonID, 0, len(faces))
	for _, f := range faces {
		polys = append(polys, Face(md, g, v[f[0]], v[f[1]], v[f[2]], v[f[3]]))
	}
	return g, polys
}

// RegularPolygon creates a convex n-gon of the given radius in the XY plane,
// counter-clockwise around the origin.
func RegularPolygon(md *meshdesc.MeshDescription, g meshdesc.PolygonGroupID, n int, radius float32) meshdesc.PolygonID {
	verts := make([]meshdesc.VertexID, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		verts[i] = Vertex(md, geom.Vec3(radius*float32(math.Cos(a)), radius*float32(math.Sin(a)), 0))
	}
	return Face(md, g, verts...)
}

// RandomSoup creates n unconnected triangles with random corners in the unit
// cube, spread over up to four polygon groups.
func RandomSoup(md *meshdesc.MeshDescription, rng *RNG, n int) []meshdesc.PolygonID {
	groups := make([]meshdesc.PolygonGroupID, 1+min(3, n/8))
	for i := range groups {
		groups[i] = md.CreatePolygonGroup()
	}

	polys := make([]meshdesc.PolygonID, 0, n)
	for range n {
		g := groups[rng.Intn(len(groups))]
		polys = append(polys, Face(md, g,
			Vertex(md, rng.Vec3(0, 1)),
			Vertex(md, rng.Vec3(0, 1)),
			Vertex(md, rng.Vec3(0, 1)),
		))
	}
	return polys
}

// SetPlanarUVs projects every vertex instance position onto XY into UV
// channel 0. The mesh must have the standard attributes registered.
func SetPlanarUVs(md *meshdesc.MeshDescription) {
	uvs := md.VertexInstanceUVs()
	positions := md.VertexPositions()
	for _, vi := range md.VertexInstanceIDs() {
		p := positions.Get(md.GetVertexInstanceVertex(vi))
		uvs.Set(vi, geom.Vec2(p.X, p.Y))
	}
}

package meshdesc

import (
	"slices"

	"github.com/hupe1980/meshdesc/core"
	"github.com/hupe1980/meshdesc/geom"
)

// TriangulationStats summarizes one or more polygon triangulations.
type TriangulationStats struct {
	Polygons  int
	Triangles int
	// ForcedEars counts ears accepted without passing the ear test because
	// no valid ear was left. Their triangles may be inverted or have zero area.
	ForcedEars         int
	DegeneratePolygons int
}

func (s *TriangulationStats) add(o TriangulationStats) {
	s.Polygons += o.Polygons
	s.Triangles += o.Triangles
	s.ForcedEars += o.ForcedEars
	s.DegeneratePolygons += o.DegeneratePolygons
}

// ComputePolygonTriangulation (re)builds the triangles of polygon p from its
// perimeter by ear clipping. Existing triangles of p are removed first,
// together with the internal edges only they used.
func (md *MeshDescription) ComputePolygonTriangulation(p PolygonID) TriangulationStats {
	poly := md.polygons.Get(p)
	md.check(poly != nil, "ComputePolygonTriangulation", "invalid polygon %d", p)
	if poly == nil {
		return TriangulationStats{}
	}
	n := len(poly.perimeter)
	if n == 3 && len(poly.triangles) == 1 {
		return TriangulationStats{Polygons: 1, Triangles: 1}
	}

	md.removePolygonTriangles(p)

	tris, forced := md.earClip(md.polygons.Get(p).perimeter)
	for _, corners := range tris {
		tid := md.triangles.Add()
		md.triangleAttrs.Insert(tid)
		t := md.triangles.Get(tid)
		t.corners = corners
		t.polygon = p
		md.connectTriangle(tid, nil)
		poly := md.polygons.Get(p)
		poly.triangles = append(poly.triangles, tid)
		md.opts.metricsCollector.RecordCreate(core.KindTriangle)
	}

	stats := TriangulationStats{Polygons: 1, Triangles: len(tris), ForcedEars: forced}
	if forced > 0 {
		stats.DegeneratePolygons = 1
		md.opts.logger.LogTriangulate(md.ctx(), p, n, len(tris), forced)
	}
	md.opts.metricsCollector.RecordTriangulate(n, len(tris), forced > 0)
	return stats
}

// removePolygonTriangles deletes the triangles of p. Internal edges are
// deleted; perimeter edges are only disconnected.
func (md *MeshDescription) removePolygonTriangles(p PolygonID) {
	poly := md.polygons.Get(p)
	for _, tid := range slices.Clone(poly.triangles) {
		md.disconnectTriangle(tid, nil)
		md.freeTriangle(tid)
	}
	md.polygons.Get(p).triangles = nil
}

// ComputePolygonTriangles returns the triangulation of polygon p's
// perimeter without modifying the mesh.
func (md *MeshDescription) ComputePolygonTriangles(p PolygonID) [][3]VertexInstanceID {
	poly := md.polygons.Get(p)
	if poly == nil {
		return nil
	}
	tris, _ := md.earClip(poly.perimeter)
	return tris
}

// TriangulateMesh re-triangulates every polygon.
func (md *MeshDescription) TriangulateMesh() TriangulationStats {
	var stats TriangulationStats
	for _, p := range md.polygons.IDs() {
		stats.add(md.ComputePolygonTriangulation(p))
	}
	md.opts.logger.DebugContext(md.ctx(), "mesh triangulated",
		"polygons", stats.Polygons,
		"triangles", stats.Triangles,
		"degenerate", stats.DegeneratePolygons,
	)
	return stats
}

// earClip triangulates a perimeter by ear clipping against the perimeter's
// Newell normal. When no remaining corner passes the ear test the current
// candidate is accepted anyway; the number of such forced ears is returned.
func (md *MeshDescription) earClip(perimeter []VertexInstanceID) ([][3]VertexInstanceID, int) {
	n := len(perimeter)
	if n < 3 {
		return nil, 0
	}
	if n == 3 {
		return [][3]VertexInstanceID{{perimeter[0], perimeter[1], perimeter[2]}}, 0
	}

	positions := md.instancePositions(perimeter)
	normal := geom.NewellNormal(positions)

	prev := make([]int, n)
	next := make([]int, n)
	for i := range n {
		prev[i] = (i + n - 1) % n
		next[i] = (i + 1) % n
	}

	out := make([][3]VertexInstanceID, 0, n-2)
	forced := 0
	remaining := n
	ear := 0
	tested := 0
	for remaining >= 3 {
		isEar := true
		if remaining > 3 && tested < remaining {
			a, b, c := positions[prev[ear]], positions[ear], positions[next[ear]]
			if geom.IsTriangleFlipped(normal, a, b, c) {
				isEar = false
			} else {
				for k := next[next[ear]]; k != prev[ear]; k = next[k] {
					if geom.PointInTriangle(a, b, c, positions[k], md.opts.epsilon) {
						isEar = false
						break
					}
				}
			}
		} else if remaining > 3 {
			forced++
		}

		if !isEar {
			ear = next[ear]
			tested++
			continue
		}

		out = append(out, [3]VertexInstanceID{perimeter[prev[ear]], perimeter[ear], perimeter[next[ear]]})
		next[prev[ear]] = next[ear]
		prev[next[ear]] = prev[ear]
		remaining--
		ear = prev[ear]
		tested = 0
	}
	return out, forced
}

// instancePositions returns the Position of each instance's vertex; zero
// vectors when the attribute is not registered.
func (md *MeshDescription) instancePositions(corners []VertexInstanceID) []geom.Vector3 {
	out := make([]geom.Vector3, len(corners))
	pos := md.VertexPositions()
	if !pos.IsValid() {
		return out
	}
	for i, vi := range corners {
		if v := md.GetVertexInstanceVertex(vi); v != InvalidVertexID {
			out[i] = pos.Get(v)
		}
	}
	return out
}

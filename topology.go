package meshdesc

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/meshdesc/attribute"
	"github.com/hupe1980/meshdesc/geom"
)

// DetermineEdgeHardnessesFromVertexInstanceNormals sets the IsHard edge
// attribute. Border edges (one polygon) are hard; an edge shared by several
// polygons is hard when, at either end, the polygons' corners disagree on
// the vertex instance normal by more than tolerance per component. Edges
// without polygons are left unchanged. Nothing happens unless both
// attributes are registered.
func (md *MeshDescription) DetermineEdgeHardnessesFromVertexInstanceNormals(tolerance float32) {
	normals := md.VertexInstanceNormals()
	hard := attribute.GetRef[bool](md.edgeAttrs, EdgeAttributeIsHard)
	if !normals.IsValid() || !hard.IsValid() {
		return
	}

	for e, ed := range md.edges.All() {
		polys := md.GetEdgeConnectedPolygons(e)
		switch len(polys) {
		case 0:
			continue
		case 1:
			hard.Set(e, true)
			continue
		}
		isHard := false
		for _, v := range ed.vertices {
			if md.cornersDiffer(polys, v, func(a, b VertexInstanceID) bool {
				return !normals.Get(a).Equals(normals.Get(b), tolerance)
			}) {
				isHard = true
				break
			}
		}
		hard.Set(e, isHard)
	}
}

// DetermineUVSeamsFromUVs sets the IsUVSeam edge attribute from texture
// coordinate channel uvIndex: an edge is a seam when, at either end, the
// connected polygons' corners disagree on the UV by more than tolerance.
// Nothing happens unless both attributes are registered and uvIndex is a
// valid channel.
func (md *MeshDescription) DetermineUVSeamsFromUVs(uvIndex int, tolerance float32) {
	uvs := md.VertexInstanceUVs()
	seams := attribute.GetRef[bool](md.edgeAttrs, EdgeAttributeIsUVSeam)
	if !uvs.IsValid() || !seams.IsValid() || uvIndex < 0 || uvIndex >= uvs.NumChannels() {
		return
	}

	for e, ed := range md.edges.All() {
		polys := md.GetEdgeConnectedPolygons(e)
		if len(polys) == 0 {
			continue
		}
		isSeam := false
		for _, v := range ed.vertices {
			if md.cornersDiffer(polys, v, func(a, b VertexInstanceID) bool {
				return !uvs.GetChannel(a, uvIndex).Equals(uvs.GetChannel(b, uvIndex), tolerance)
			}) {
				isSeam = true
				break
			}
		}
		seams.Set(e, isSeam)
	}
}

// cornersDiffer reports whether the corners of polys at vertex v differ
// from the first one according to differ.
func (md *MeshDescription) cornersDiffer(polys []PolygonID, v VertexID, differ func(a, b VertexInstanceID) bool) bool {
	first := InvalidVertexInstanceID
	for _, p := range polys {
		vi := md.GetVertexInstanceForPolygonVertex(p, v)
		if vi == InvalidVertexInstanceID {
			continue
		}
		if first == InvalidVertexInstanceID {
			first = vi
			continue
		}
		if vi != first && differ(first, vi) {
			return true
		}
	}
	return false
}

// GetPolygonsInSameChartAsPolygon returns the polygons reachable from p
// across perimeter edges that are not UV seams, p included. Without the
// IsUVSeam attribute every edge is crossable.
func (md *MeshDescription) GetPolygonsInSameChartAsPolygon(p PolygonID) []PolygonID {
	if !md.polygons.IsValid(p) {
		return nil
	}
	visited := roaring.New()
	return md.floodChart(p, visited)
}

// GetAllCharts partitions the polygons into UV charts.
func (md *MeshDescription) GetAllCharts() [][]PolygonID {
	var charts [][]PolygonID
	consumed := roaring.New()
	for p := range md.polygons.All() {
		if consumed.Contains(uint32(p)) {
			continue
		}
		charts = append(charts, md.floodChart(p, consumed))
	}
	return charts
}

func (md *MeshDescription) floodChart(start PolygonID, visited *roaring.Bitmap) []PolygonID {
	seams := attribute.GetRef[bool](md.edgeAttrs, EdgeAttributeIsUVSeam)

	chart := []PolygonID{start}
	visited.Add(uint32(start))
	for i := 0; i < len(chart); i++ {
		for _, e := range md.GetPolygonPerimeterEdges(chart[i]) {
			if e == InvalidEdgeID || (seams.IsValid() && seams.Get(e)) {
				continue
			}
			for _, other := range md.GetEdgeConnectedPolygons(e) {
				if visited.CheckedAdd(uint32(other)) {
					chart = append(chart, other)
				}
			}
		}
	}
	return chart
}

// ComputeVertexInstanceNormalsFromPolygons sets every vertex instance
// normal to the area-weighted average of the normals of the triangles using
// it. The Normal attribute is registered if missing.
func (md *MeshDescription) ComputeVertexInstanceNormalsFromPolygons() {
	normals := attribute.Register(md.vertexInstanceAttrs, VertexInstanceAttributeNormal, 1, geom.Vector3{},
		attribute.FlagAutoGenerated|attribute.FlagMergeable|attribute.FlagLerpable)
	sums := make(map[VertexInstanceID]geom.Vector3, md.vertexInstances.Len())
	for _, t := range md.triangles.All() {
		pos := md.instancePositions(t.corners[:])
		n := pos[1].Sub(pos[0]).Cross(pos[2].Sub(pos[0]))
		for _, c := range t.corners {
			sums[c] = sums[c].Add(n)
		}
	}
	for vi := range md.vertexInstances.All() {
		normals.Set(vi, sums[vi].SafeNormal())
	}
}

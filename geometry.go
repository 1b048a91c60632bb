package meshdesc

import (
	"math"

	"github.com/hupe1980/meshdesc/geom"
)

// ComputePolygonNormal returns the unit normal of polygon p by Newell's
// method over its perimeter positions. Counter-clockwise perimeters face the
// viewer. The zero vector is returned for degenerate or invalid polygons.
func (md *MeshDescription) ComputePolygonNormal(p PolygonID) geom.Vector3 {
	poly := md.polygons.Get(p)
	if poly == nil {
		return geom.Vector3{}
	}
	return geom.NewellNormal(md.instancePositions(poly.perimeter))
}

// ComputePolygonPlane returns the best-fit plane of polygon p.
func (md *MeshDescription) ComputePolygonPlane(p PolygonID) geom.Plane {
	poly := md.polygons.Get(p)
	if poly == nil {
		return geom.Plane{}
	}
	return geom.NewellPlane(md.instancePositions(poly.perimeter))
}

// ComputePolygonCenter returns the average of polygon p's perimeter positions.
func (md *MeshDescription) ComputePolygonCenter(p PolygonID) geom.Vector3 {
	poly := md.polygons.Get(p)
	if poly == nil || len(poly.perimeter) == 0 {
		return geom.Vector3{}
	}
	var sum geom.Vector3
	for _, pos := range md.instancePositions(poly.perimeter) {
		sum = sum.Add(pos)
	}
	return sum.Scale(1 / float32(len(poly.perimeter)))
}

// ComputeBoundingBox returns the bounds of every vertex position.
func (md *MeshDescription) ComputeBoundingBox() geom.Box {
	var box geom.Box
	pos := md.VertexPositions()
	if !pos.IsValid() {
		return box
	}
	for v := range md.vertices.All() {
		box.Extend(pos.Get(v))
	}
	return box
}

// GetBounds returns box and sphere bounds of the vertices used by at least
// one triangle. The sphere shares the box center.
func (md *MeshDescription) GetBounds() geom.BoxSphereBounds {
	pos := md.VertexPositions()
	if !pos.IsValid() {
		return geom.BoxSphereBounds{}
	}

	var box geom.Box
	for v := range md.vertices.All() {
		if !md.IsVertexOrphaned(v) {
			box.Extend(pos.Get(v))
		}
	}
	center, extents := box.CenterAndExtents()

	var radiusSq float32
	for v := range md.vertices.All() {
		if !md.IsVertexOrphaned(v) {
			radiusSq = max(radiusSq, pos.Get(v).Sub(center).LengthSquared())
		}
	}
	return geom.BoxSphereBounds{
		Origin:       center,
		BoxExtent:    extents,
		SphereRadius: float32(math.Sqrt(float64(radiusSq))),
	}
}

// GetPolygonCornerAngleForVertex returns the interior angle, in radians, at
// the perimeter corner of polygon p that instances vertex v, or 0 if v is
// not on the perimeter.
func (md *MeshDescription) GetPolygonCornerAngleForVertex(p PolygonID, v VertexID) float32 {
	vs := md.GetPolygonVertices(p)
	n := len(vs)
	for i, pv := range vs {
		if pv != v {
			continue
		}
		pos := md.VertexPositions()
		if !pos.IsValid() {
			return 0
		}
		this := pos.Get(v)
		prev := pos.Get(vs[(i+n-1)%n])
		next := pos.Get(vs[(i+1)%n])
		d0 := prev.Sub(this).SafeNormal()
		d1 := next.Sub(this).SafeNormal()
		return geom.Acos(d0.Dot(d1))
	}
	return 0
}

package geom

import "math"

// Box is an axis-aligned bounding box. The zero Box is empty.
type Box struct {
	Min, Max Vector3
	Valid    bool
}

// Extend grows the box to contain p.
func (b *Box) Extend(p Vector3) {
	if !b.Valid {
		b.Min, b.Max, b.Valid = p, p, true
		return
	}
	b.Min = ComponentMin(b.Min, p)
	b.Max = ComponentMax(b.Max, p)
}

// CenterAndExtents returns the box center and half-size.
func (b Box) CenterAndExtents() (center, extents Vector3) {
	if !b.Valid {
		return Vector3{}, Vector3{}
	}
	extents = b.Max.Sub(b.Min).Scale(0.5)
	return b.Min.Add(extents), extents
}

// BoxSphereBounds couples a bounding box with a bounding sphere sharing its origin.
type BoxSphereBounds struct {
	Origin       Vector3
	BoxExtent    Vector3
	SphereRadius float32
}

// Plane is the set of points p with Normal·p == W.
type Plane struct {
	Normal Vector3
	W      float32
}

// NewellNormal computes the best-fit normal of a closed polygon using
// Newell's method. Counter-clockwise polygons produce a normal pointing
// towards the viewer. The result is normalized; it is the zero vector for
// degenerate input.
func NewellNormal(points []Vector3) Vector3 {
	var n Vector3
	for i, j := len(points)-1, 0; j < len(points); i, j = j, j+1 {
		pi, pj := points[i], points[j]
		n.X += (pi.Y - pj.Y) * (pi.Z + pj.Z)
		n.Y += (pi.Z - pj.Z) * (pi.X + pj.X)
		n.Z += (pi.X - pj.X) * (pi.Y + pj.Y)
	}
	return n.SafeNormal()
}

// NewellPlane computes the best-fit plane of a closed polygon.
func NewellPlane(points []Vector3) Plane {
	if len(points) == 0 {
		return Plane{}
	}
	var centroid Vector3
	for _, p := range points {
		centroid = centroid.Add(p)
	}
	n := NewellNormal(points)
	return Plane{Normal: n, W: centroid.Dot(n) / float32(len(points))}
}

// IsTriangleFlipped reports whether triangle (a, b, c), wound counter-clockwise
// around its front face, faces away from ref.
func IsTriangleFlipped(ref, a, b, c Vector3) bool {
	n := b.Sub(a).Cross(c.Sub(a)).SafeNormal()
	return ref.Dot(n) <= 0
}

// vectorsOnSameSide reports whether a and b lie on the same side of v.
func vectorsOnSameSide(v, a, b Vector3, epsilon float32) bool {
	ca := v.Cross(a)
	cb := v.Cross(b)
	return !math.Signbit(float64(epsilon + ca.Dot(cb)))
}

// PointInTriangle reports whether p lies inside triangle (a, b, c), using
// same-side tests with the given dot-product epsilon.
func PointInTriangle(a, b, c, p Vector3, epsilon float32) bool {
	return vectorsOnSameSide(b.Sub(a), p.Sub(a), c.Sub(a), epsilon) &&
		vectorsOnSameSide(c.Sub(b), p.Sub(b), a.Sub(b), epsilon) &&
		vectorsOnSameSide(a.Sub(c), p.Sub(c), b.Sub(c), epsilon)
}

// Acos returns the arc cosine of x clamped to [-1, 1].
func Acos(x float32) float32 {
	return float32(math.Acos(float64(max(-1, min(1, x)))))
}

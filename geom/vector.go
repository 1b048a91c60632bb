package geom

import "math"

// SmallNumber is the default epsilon for near-zero tests.
const SmallNumber = 1e-8

// KindaSmallNumber is the default tolerance for value comparisons.
const KindaSmallNumber = 1e-4

// Vector2 is a 2D vector (e.g. a texture coordinate).
type Vector2 struct {
	X, Y float32
}

// Vector3 is a 3D vector (positions, normals, tangents).
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is a 4D vector (colors).
type Vector4 struct {
	X, Y, Z, W float32
}

// Vec2 returns a Vector2.
func Vec2(x, y float32) Vector2 { return Vector2{X: x, Y: y} }

// Vec3 returns a Vector3.
func Vec3(x, y, z float32) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// Vec4 returns a Vector4.
func Vec4(x, y, z, w float32) Vector4 { return Vector4{X: x, Y: y, Z: z, W: w} }

// Equals reports whether v and o differ by at most tolerance per component.
func (v Vector2) Equals(o Vector2, tolerance float32) bool {
	return abs(v.X-o.X) <= tolerance && abs(v.Y-o.Y) <= tolerance
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vector3) Scale(s float32) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns |v|².
func (v Vector3) LengthSquared() float32 { return v.Dot(v) }

// Length returns |v|.
func (v Vector3) Length() float32 { return float32(math.Sqrt(float64(v.LengthSquared()))) }

// SafeNormal returns v normalized, or the zero vector if v is (nearly) zero.
func (v Vector3) SafeNormal() Vector3 {
	sq := v.LengthSquared()
	if sq < SmallNumber {
		return Vector3{}
	}
	return v.Scale(1 / float32(math.Sqrt(float64(sq))))
}

// IsNearlyZero reports whether every component is within tolerance of zero.
func (v Vector3) IsNearlyZero(tolerance float32) bool {
	return abs(v.X) <= tolerance && abs(v.Y) <= tolerance && abs(v.Z) <= tolerance
}

// Equals reports whether v and o differ by at most tolerance per component.
func (v Vector3) Equals(o Vector3, tolerance float32) bool {
	return v.Sub(o).IsNearlyZero(tolerance)
}

// Equals reports whether v and o differ by at most tolerance per component.
func (v Vector4) Equals(o Vector4, tolerance float32) bool {
	return abs(v.X-o.X) <= tolerance && abs(v.Y-o.Y) <= tolerance &&
		abs(v.Z-o.Z) <= tolerance && abs(v.W-o.W) <= tolerance
}

// ComponentMin returns the per-component minimum.
func ComponentMin(a, b Vector3) Vector3 {
	return Vector3{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
}

// ComponentMax returns the per-component maximum.
func ComponentMax(a, b Vector3) Vector3 {
	return Vector3{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

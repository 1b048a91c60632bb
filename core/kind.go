package core

// ElementKind enumerates the six element collections of a mesh description.
type ElementKind uint8

const (
	KindVertex ElementKind = iota
	KindVertexInstance
	KindEdge
	KindTriangle
	KindPolygon
	KindPolygonGroup

	// NumElementKinds is the number of element kinds.
	NumElementKinds = int(KindPolygonGroup) + 1
)

// String returns the string representation of the ElementKind.
func (k ElementKind) String() string {
	switch k {
	case KindVertex:
		return "Vertex"
	case KindVertexInstance:
		return "VertexInstance"
	case KindEdge:
		return "Edge"
	case KindTriangle:
		return "Triangle"
	case KindPolygon:
		return "Polygon"
	case KindPolygonGroup:
		return "PolygonGroup"
	default:
		return "Unknown"
	}
}

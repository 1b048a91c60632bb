package core

// ElementID is the constraint satisfied by every element identifier.
//
// IDs are plain indices into the owning element array. They are stable
// across attribute mutation but are invalidated by compaction.
type ElementID interface {
	~int32
}

// VertexID identifies a vertex (a shared position).
type VertexID int32

// VertexInstanceID identifies a split-vertex: a per-corner instance of a vertex.
type VertexInstanceID int32

// EdgeID identifies an undirected edge between two vertices.
type EdgeID int32

// TriangleID identifies a triangle owned by a polygon.
type TriangleID int32

// PolygonID identifies a polygon (triangle or n-gon).
type PolygonID int32

// PolygonGroupID identifies a polygon group (material section).
type PolygonGroupID int32

// Invalid sentinels. An ID equal to its sentinel denotes absence.
const (
	InvalidVertexID         VertexID         = -1
	InvalidVertexInstanceID VertexInstanceID = -1
	InvalidEdgeID           EdgeID           = -1
	InvalidTriangleID       TriangleID       = -1
	InvalidPolygonID        PolygonID        = -1
	InvalidPolygonGroupID   PolygonGroupID   = -1
)

// Invalid returns the invalid sentinel for any ID type.
func Invalid[ID ElementID]() ID { return ID(-1) }

// Index returns the ID as a slice index.
func Index[ID ElementID](id ID) int { return int(id) }

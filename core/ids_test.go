package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalid(t *testing.T) {
	assert.Equal(t, InvalidVertexID, Invalid[VertexID]())
	assert.Equal(t, InvalidPolygonGroupID, Invalid[PolygonGroupID]())
	assert.Equal(t, 7, Index(EdgeID(7)))
}

func TestElementKindString(t *testing.T) {
	tests := []struct {
		kind     ElementKind
		expected string
	}{
		{KindVertex, "Vertex"},
		{KindVertexInstance, "VertexInstance"},
		{KindEdge, "Edge"},
		{KindTriangle, "Triangle"},
		{KindPolygon, "Polygon"},
		{KindPolygonGroup, "PolygonGroup"},
		{ElementKind(42), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.kind.String())
	}
}

func TestIndexRemap(t *testing.T) {
	r := IndexRemap{0, -1, 1, 2}

	assert.Equal(t, int32(0), r.Get(0))
	assert.Equal(t, int32(-1), r.Get(1))
	assert.Equal(t, int32(2), r.Get(3))
	assert.Equal(t, int32(-1), r.Get(4))
	assert.Equal(t, int32(-1), r.Get(-1))
	assert.Equal(t, 3, r.NewSize())
	assert.False(t, r.IsIdentity())

	assert.Equal(t, VertexID(1), Remapped(r, VertexID(2)))
	assert.Equal(t, InvalidVertexID, Remapped(r, InvalidVertexID))
	assert.Equal(t, VertexID(5), Remapped(IndexRemap(nil), VertexID(5)))

	id := IdentityRemap(4)
	assert.True(t, id.IsIdentity())
	assert.Equal(t, 4, id.NewSize())
}

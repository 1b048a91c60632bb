package meshdesc

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshdesc/attribute"
	"github.com/hupe1980/meshdesc/geom"
	"github.com/hupe1980/meshdesc/persistence"
)

// newSampleMesh builds a mesh with quads, a lone triangle, holes in every
// element array and a few attributes.
func newSampleMesh(t *testing.T) *MeshDescription {
	t.Helper()

	md := New()
	RegisterStandardAttributes(md, 2)
	g, polys := buildGrid(md, 3, 2)
	md.PolygonGroupMaterialSlotNames().Set(g, "brick")

	tg := md.CreatePolygonGroup()
	md.PolygonGroupMaterialSlotNames().Set(tg, "glass")
	var corners [3]VertexInstanceID
	for i, p := range []geom.Vector3{{X: 5}, {X: 6}, {X: 5, Y: 1}} {
		corners[i] = md.CreateVertexInstance(newVertexAt(md, p))
	}
	md.CreateTriangle(tg, corners, nil)

	md.DeletePolygons([]PolygonID{polys[0], polys[4]})

	uvs := md.VertexInstanceUVs()
	for _, vi := range md.VertexInstanceIDs() {
		p := md.VertexPositions().Get(md.GetVertexInstanceVertex(vi))
		uvs.SetChannel(vi, 1, geom.Vec2(p.X/3, p.Y/2))
	}
	md.ComputeVertexInstanceNormalsFromPolygons()
	md.DetermineEdgeHardnessesFromVertexInstanceNormals(1e-4)

	requireConsistent(t, md)
	return md
}

func requireSameMesh(t *testing.T, want, got *MeshDescription) {
	t.Helper()

	require.Equal(t, want.VertexIDs(), got.VertexIDs())
	require.Equal(t, want.VertexInstanceIDs(), got.VertexInstanceIDs())
	require.Equal(t, want.EdgeIDs(), got.EdgeIDs())
	require.Equal(t, want.PolygonIDs(), got.PolygonIDs())
	require.Equal(t, want.PolygonGroupIDs(), got.PolygonGroupIDs())
	require.Equal(t, want.NumTriangles(), got.NumTriangles())

	for _, v := range want.VertexIDs() {
		assert.Equal(t, want.VertexPositions().Get(v), got.VertexPositions().Get(v))
	}
	for _, vi := range want.VertexInstanceIDs() {
		assert.Equal(t, want.GetVertexInstanceVertex(vi), got.GetVertexInstanceVertex(vi))
		assert.Equal(t, want.VertexInstanceUVs().GetChannel(vi, 1), got.VertexInstanceUVs().GetChannel(vi, 1))
		assert.Equal(t, want.VertexInstanceNormals().Get(vi), got.VertexInstanceNormals().Get(vi))
	}
	for _, e := range want.EdgeIDs() {
		assert.Equal(t, want.GetEdgeVertices(e), got.GetEdgeVertices(e))
	}
	for _, p := range want.PolygonIDs() {
		assert.Equal(t, want.GetPolygonVertexInstances(p), got.GetPolygonVertexInstances(p))
		assert.Equal(t, want.GetPolygonPolygonGroup(p), got.GetPolygonPolygonGroup(p))
		assert.Len(t, got.GetPolygonTriangles(p), len(want.GetPolygonTriangles(p)))
	}
	for _, g := range want.PolygonGroupIDs() {
		assert.Equal(t, want.PolygonGroupMaterialSlotNames().Get(g), got.PolygonGroupMaterialSlotNames().Get(g))
	}
	requireConsistent(t, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	md := newSampleMesh(t)

	var buf bytes.Buffer
	require.NoError(t, md.Save(&buf))

	loaded := New()
	require.NoError(t, loaded.Load(bytes.NewReader(buf.Bytes())))
	requireSameMesh(t, md, loaded)

	for _, tid := range md.TriangleIDs() {
		assert.Equal(t, md.GetTriangleVertexInstances(tid), loaded.GetTriangleVertexInstances(tid))
		assert.Equal(t, md.GetTrianglePolygon(tid), loaded.GetTrianglePolygon(tid))
	}

	hard := attribute.GetRef[bool](loaded.EdgeAttributes(), EdgeAttributeIsHard)
	require.True(t, hard.IsValid())
	for _, e := range md.EdgeIDs() {
		assert.Equal(t, attribute.GetRef[bool](md.EdgeAttributes(), EdgeAttributeIsHard).Get(e), hard.Get(e))
	}

	// Transient attributes are not persisted.
	assert.False(t, loaded.PolygonAttributes().Has(PolygonAttributeCenter))
}

func TestSaveLoadLegacyFormat(t *testing.T) {
	md := newSampleMesh(t)

	var buf bytes.Buffer
	require.NoError(t, md.Save(&buf, WithFormatVersion(persistence.FormatVersionLegacyPolygons)))

	metrics := &BasicMetricsCollector{}
	loaded := New(WithMetricsCollector(metrics))
	require.NoError(t, loaded.Load(&buf))
	requireSameMesh(t, md, loaded)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Equal(t, int64(loaded.NumPolygons()), stats.TriangulatedPolygons)
}

func TestSaveUnsupportedVersion(t *testing.T) {
	md := newSampleMesh(t)
	err := md.Save(&bytes.Buffer{}, WithFormatVersion(99))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestLoadEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Save(&buf))

	loaded := New()
	require.NoError(t, loaded.Load(&buf))
	assert.True(t, loaded.IsEmpty())
}

func TestLoadCorrupt(t *testing.T) {
	md := newSampleMesh(t)
	data, err := md.MarshalBinary()
	require.NoError(t, err)

	t.Run("bad magic", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[0] ^= 0xFF
		loaded := New()
		require.ErrorIs(t, loaded.UnmarshalBinary(bad), ErrInvalidMagic)
		assert.True(t, loaded.IsEmpty())
	})

	t.Run("flipped byte", func(t *testing.T) {
		bad := bytes.Clone(data)
		bad[len(bad)/2] ^= 0x5A
		loaded := New()
		require.Error(t, loaded.UnmarshalBinary(bad))
		assert.True(t, loaded.IsEmpty())
	})

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{0, 10, len(data) / 3, len(data) - 1} {
			loaded := New()
			require.Error(t, loaded.UnmarshalBinary(data[:n]))
			assert.True(t, loaded.IsEmpty())
		}
	})

	t.Run("load replaces previous contents on failure", func(t *testing.T) {
		loaded := newSampleMesh(t)
		require.Error(t, loaded.UnmarshalBinary(data[:len(data)/2]))
		assert.True(t, loaded.IsEmpty())
	})
}

func TestSaveLoadFile(t *testing.T) {
	md := newSampleMesh(t)
	metrics := &BasicMetricsCollector{}
	md.opts.metricsCollector = metrics

	path := filepath.Join(t.TempDir(), "mesh.mshd")
	require.NoError(t, md.SaveFile(path))

	loaded := New()
	require.NoError(t, loaded.LoadFile(path))
	requireSameMesh(t, md, loaded)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Positive(t, stats.SaveBytes)
}

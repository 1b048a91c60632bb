package persistence

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vertexID int32

func TestBinaryFormat_WriteRead(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteHeader(&FileHeader{Version: FormatVersionTriangles}))
	w.Uint8(7)
	w.Bool(true)
	w.Int32(-3)
	w.Uint64(1 << 40)
	w.Float32(1.5)
	w.Text("Position")
	w.Text("")
	w.Float32s([]float32{1, 2, 3})
	w.Int32s(nil)
	WriteIDs(w, []vertexID{4, -1, 9})
	require.NoError(t, w.Err())
	assert.Equal(t, int64(buf.Len()), w.Written())

	r := NewReader(&buf)
	header, err := r.ReadHeader()
	require.NoError(t, err)
	assert.Equal(t, FormatVersionTriangles, header.Version)

	assert.Equal(t, uint8(7), r.Uint8())
	assert.True(t, r.Bool())
	assert.Equal(t, int32(-3), r.Int32())
	assert.Equal(t, uint64(1<<40), r.Uint64())
	assert.Equal(t, float32(1.5), r.Float32())
	assert.Equal(t, "Position", r.Text())
	assert.Equal(t, "", r.Text())
	assert.Equal(t, []float32{1, 2, 3}, r.Float32s())
	assert.Nil(t, r.Int32s())
	assert.Equal(t, []vertexID{4, -1, 9}, ReadIDs[vertexID](r))
	require.NoError(t, r.Err())
}

func TestReader_Errors(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		r := NewReader(bytes.NewReader(make([]byte, 32)))
		_, err := r.ReadHeader()
		require.ErrorIs(t, err, ErrInvalidMagic)
	})

	t.Run("bad version", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewWriter(&buf).WriteHeader(&FileHeader{Version: 99}))
		_, err := NewReader(&buf).ReadHeader()
		require.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("truncated", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{1, 2}))
		assert.Equal(t, uint32(0), r.Uint32())
		require.ErrorIs(t, r.Err(), ErrCorrupt)
		// Sticky: later reads keep the first error.
		r.Uint8()
		require.ErrorIs(t, r.Err(), ErrCorrupt)
	})

	t.Run("oversized count", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		w.Uint32(MaxCount + 1)
		r := NewReader(&buf)
		assert.Nil(t, r.Float32s())
		require.ErrorIs(t, r.Err(), ErrCorrupt)
	})

	t.Run("invalid bool", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{2}))
		r.Bool()
		require.ErrorIs(t, r.Err(), ErrCorrupt)
	})
}

func TestArchive_Checksum(t *testing.T) {
	var buf bytes.Buffer
	aw, err := NewArchiveWriter(&buf, FormatVersionLegacyPolygons)
	require.NoError(t, err)
	aw.Text("hello")
	aw.Int32(42)
	require.NoError(t, aw.Close())

	data := buf.Bytes()

	ar, err := NewArchiveReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, FormatVersionLegacyPolygons, ar.Header.Version)
	assert.Equal(t, "hello", ar.Text())
	assert.Equal(t, int32(42), ar.Int32())
	require.NoError(t, ar.Verify())

	corrupt := bytes.Clone(data)
	corrupt[len(corrupt)-6] ^= 0xFF
	ar, err = NewArchiveReader(bytes.NewReader(corrupt))
	require.NoError(t, err)
	ar.Text()
	ar.Int32()
	err = ar.Verify()
	require.Error(t, err)
	assert.True(t, IsChecksumMismatch(err))
	var mismatch *ChecksumMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.NotEqual(t, mismatch.Expected, mismatch.Actual)

	ar, err = NewArchiveReader(bytes.NewReader(data[:len(data)-2]))
	require.NoError(t, err)
	ar.Text()
	ar.Int32()
	require.ErrorIs(t, ar.Verify(), ErrCorrupt)
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.bin")

	err := SaveToFile(path, func(w io.Writer) error {
		bw := NewWriter(w)
		bw.Float32s([]float32{1.1, 2.2})
		return bw.Err()
	})
	require.NoError(t, err)

	var got []float32
	err = LoadFromFile(path, func(r io.Reader) error {
		br := NewReader(r)
		got = br.Float32s()
		return br.Err()
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{1.1, 2.2}, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestFormatVersion(t *testing.T) {
	assert.True(t, FormatVersionTriangles.HasTriangles())
	assert.False(t, FormatVersionLegacyPolygons.HasTriangles())
	assert.False(t, FormatVersion(0).IsSupported())
	assert.Equal(t, "triangles", CurrentFormatVersion.String())
}

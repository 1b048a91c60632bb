package bulkdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshdesc/blobstore"
	"github.com/hupe1980/meshdesc/codec"
)

func testCatalog(t *testing.T, c Catalog) {
	t.Helper()
	ctx := t.Context()

	_, err := c.Lookup(ctx, "props/crate")
	assert.ErrorIs(t, err, ErrAssetNotFound)

	r1 := Ref{Hash: "aa", Key: "bulk/aa/aa.bin", GUID: "g1"}
	e, err := c.Commit(ctx, "props/crate", r1, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), e.Version)

	_, err = c.Commit(ctx, "props/crate", r1, 0)
	assert.ErrorIs(t, err, ErrConcurrentModification)

	r2 := Ref{Hash: "bb", Key: "bulk/bb/bb.bin", GUID: "g2", GUIDIsHash: true}
	e, err = c.Commit(ctx, "props/crate", r2, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), e.Version)

	got, err := c.Lookup(ctx, "props/crate")
	require.NoError(t, err)
	assert.Equal(t, Entry{Asset: "props/crate", Version: 2, Ref: r2}, got)

	_, err = c.Commit(ctx, "barrel", r1, 0)
	require.NoError(t, err)

	assets, err := c.Assets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"barrel", "props/crate"}, assets)
}

func TestMemoryCatalog(t *testing.T) {
	testCatalog(t, NewMemoryCatalog())
}

func TestStoreCatalog(t *testing.T) {
	store := blobstore.NewMemoryStore()
	testCatalog(t, NewStoreCatalog(store, "catalog", nil))

	names, err := store.List(t.Context(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"catalog/barrel.json", "catalog/props/crate.json"}, names)
}

func TestStoreCatalogCodecs(t *testing.T) {
	store := blobstore.NewMemoryStore()
	w := NewStoreCatalog(store, "", codec.JSON{})
	_, err := w.Commit(t.Context(), "crate", Ref{Hash: "aa", GUID: "g"}, 0)
	require.NoError(t, err)

	r := NewStoreCatalog(store, "", codec.GoJSON{})
	e, err := r.Lookup(t.Context(), "crate")
	require.NoError(t, err)
	assert.Equal(t, "aa", e.Ref.Hash)

	require.NoError(t, store.Put(t.Context(), "broken.json", []byte("{")))
	_, err = r.Lookup(t.Context(), "broken")
	assert.Error(t, err)
}

func TestRef(t *testing.T) {
	a := Ref{Hash: "aa", GUID: "g"}
	b := Ref{Hash: "aa", GUID: "h", GUIDIsHash: true}
	assert.True(t, a.SameContent(b))
	assert.False(t, Ref{}.SameContent(Ref{}))
	assert.Equal(t, "g", a.IDString())
	assert.Equal(t, "hX", b.IDString())
	assert.True(t, Ref{}.IsZero())
}

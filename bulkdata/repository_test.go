package bulkdata

import (
	"bytes"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshdesc"
	"github.com/hupe1980/meshdesc/blobstore"
)

// countingStore counts Put calls.
type countingStore struct {
	blobstore.Store
	puts atomic.Int32
}

func (s *countingStore) Put(ctx context.Context, name string, data []byte) error {
	s.puts.Add(1)
	return s.Store.Put(ctx, name, data)
}

func TestRepositoryPutGet(t *testing.T) {
	ctx := t.Context()
	store := blobstore.NewMemoryStore()
	repo := NewRepository(store)

	b := New(WithHashAsGUID(true))
	require.NoError(t, b.Save(gridMesh(3, 3)))

	ref, err := repo.Put(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, b.Hash(), ref.Hash)
	assert.Equal(t, "bulk/"+ref.Hash[:2]+"/"+ref.Hash+".bin", ref.Key)
	assert.Equal(t, b.Size(), ref.Size)
	assert.Equal(t, "zstd", ref.Compression)
	assert.Equal(t, b.IDString(), ref.IDString())

	got, err := repo.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, b.GUID(), got.GUID())
	assert.Equal(t, b.IDString(), got.IDString())

	md := meshdesc.New()
	require.NoError(t, repo.LoadMesh(ctx, ref, md))
	assert.Equal(t, 9, md.NumPolygons())
}

func TestRepositoryDeduplicates(t *testing.T) {
	ctx := t.Context()
	store := &countingStore{Store: blobstore.NewMemoryStore()}
	repo := NewRepository(store)

	a := New()
	require.NoError(t, a.Save(gridMesh(2, 2)))
	b := New()
	require.NoError(t, b.Save(gridMesh(2, 2)))
	require.NotEqual(t, a.GUID(), b.GUID())

	refA, err := repo.Put(ctx, a)
	require.NoError(t, err)
	refB, err := repo.Put(ctx, b)
	require.NoError(t, err)

	assert.True(t, refA.SameContent(refB))
	assert.Equal(t, refA.Key, refB.Key)
	assert.NotEqual(t, refA.GUID, refB.GUID)
	assert.Equal(t, int32(1), store.puts.Load())

	hashes, err := repo.Hashes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{refA.Hash}, hashes)
}

func TestRepositoryPutAll(t *testing.T) {
	ctx := t.Context()
	repo := NewRepository(blobstore.NewMemoryStore(), WithConcurrency(3), WithPrefix("/meshes/"))

	var bs []*BulkData
	for i := range 10 {
		b := New()
		require.NoError(t, b.Save(gridMesh(i+1, 1)))
		bs = append(bs, b)
	}

	refs, err := repo.PutAll(ctx, bs)
	require.NoError(t, err)
	require.Len(t, refs, 10)
	for i, ref := range refs {
		assert.Equal(t, bs[i].Hash(), ref.Hash)
		assert.Contains(t, ref.Key, "meshes/")
	}

	hashes, err := repo.Hashes(ctx)
	require.NoError(t, err)
	assert.Len(t, hashes, 10)

	_, err = repo.PutAll(ctx, []*BulkData{bs[0], New()})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRepositoryHashMismatch(t *testing.T) {
	ctx := t.Context()
	store := blobstore.NewMemoryStore()
	repo := NewRepository(store)

	a := New()
	require.NoError(t, a.Save(gridMesh(1, 1)))
	ref, err := repo.Put(ctx, a)
	require.NoError(t, err)

	b := New()
	require.NoError(t, b.Save(gridMesh(2, 1)))
	require.NoError(t, store.Put(ctx, ref.Key, b.Block()))

	_, err = repo.Get(ctx, ref)
	assert.ErrorIs(t, err, ErrHashMismatch)
}

func TestRepositoryMissing(t *testing.T) {
	var buf bytes.Buffer
	repo := NewRepository(blobstore.NewMemoryStore(),
		WithLogger(meshdesc.NewLogger(slog.NewTextHandler(&buf, nil))))

	_, err := repo.Get(t.Context(), Ref{Hash: "00", Key: "bulk/00/none.bin", GUID: "x"})
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	assert.Contains(t, buf.String(), "bulk data get failed")

	empty, err := repo.Get(t.Context(), Ref{})
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestRepositoryPrune(t *testing.T) {
	ctx := t.Context()
	repo := NewRepository(blobstore.NewMemoryStore())

	var refs []Ref
	for i := range 3 {
		b := New()
		require.NoError(t, b.Save(gridMesh(1, i+1)))
		ref, err := repo.Put(ctx, b)
		require.NoError(t, err)
		refs = append(refs, ref)
	}

	n, err := repo.Prune(ctx, refs[:1])
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	hashes, err := repo.Hashes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{refs[0].Hash}, hashes)

	require.NoError(t, repo.Delete(ctx, refs[0]))
	require.NoError(t, repo.Delete(ctx, Ref{}))
	hashes, err = repo.Hashes(ctx)
	require.NoError(t, err)
	assert.Empty(t, hashes)
}

package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openCounter counts Open calls that reach the wrapped store.
type openCounter struct {
	Store
	opens int
}

func (s *openCounter) Open(ctx context.Context, name string) (Blob, error) {
	s.opens++
	return s.Store.Open(ctx, name)
}

// plainBlob hides the Mappable implementation of the wrapped blob.
type plainBlob struct{ b Blob }

func (p plainBlob) ReadAt(buf []byte, off int64) (int, error) { return p.b.ReadAt(buf, off) }
func (p plainBlob) Close() error                              { return p.b.Close() }
func (p plainBlob) Size() int64                               { return p.b.Size() }

type plainStore struct{ Store }

func (s plainStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.Store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return plainBlob{b}, nil
}

func TestCachingStore(t *testing.T) {
	testStore(t, NewCachingStore(NewMemoryStore(), 1<<20))
}

func TestCachingStoreServesRepeatedReads(t *testing.T) {
	ctx := t.Context()
	inner := &openCounter{Store: NewMemoryStore()}
	store := NewCachingStore(inner, 1<<20)
	require.NoError(t, store.Put(ctx, "a", []byte("payload")))

	for range 3 {
		got, err := ReadAll(ctx, store, "a")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(got))
	}
	assert.Equal(t, 1, inner.opens)
	hits, misses := store.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)

	require.NoError(t, store.Put(ctx, "a", []byte("changed")))
	got, err := ReadAll(ctx, store, "a")
	require.NoError(t, err)
	assert.Equal(t, "changed", string(got))
	assert.Equal(t, 2, inner.opens)
}

func TestCachingStoreNonMappable(t *testing.T) {
	ctx := t.Context()
	inner := &openCounter{Store: plainStore{NewMemoryStore()}}
	store := NewCachingStore(inner, 1<<20)
	require.NoError(t, store.Put(ctx, "a", []byte("payload")))

	// Partial reads do not fill the cache.
	b, err := store.Open(ctx, "a")
	require.NoError(t, err)
	_, err = b.ReadAt(make([]byte, 3), 2)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	for range 2 {
		got, err := ReadAll(ctx, store, "a")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(got))
	}
	assert.Equal(t, 2, inner.opens)
}

func TestCachingStoreExistsDoesNotCache(t *testing.T) {
	ctx := t.Context()
	store := NewCachingStore(NewMemoryStore(), 1<<20)
	require.NoError(t, store.Put(ctx, "a", []byte("payload")))

	ok, err := Exists(ctx, store, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, store.cache.Len())

	require.NoError(t, store.Delete(ctx, "a"))
	ok, err = Exists(ctx, store, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

package blobstore

import (
	"context"
	"io"

	"github.com/hupe1980/meshdesc/internal/cache"
)

// CachingStore keeps recently read blobs in memory in front of a slower
// Store. Blobs are cached whole, the first time they are read in one piece.
// Put and Delete through the CachingStore invalidate the cached copy;
// writes that bypass it are not seen.
type CachingStore struct {
	inner Store
	cache *cache.LRU
}

// NewCachingStore wraps inner with a cache of capacity bytes.
func NewCachingStore(inner Store, capacity int64) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU(capacity),
	}
}

// Stats returns the cache hits and misses of Open.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if data, ok := s.cache.Get(name); ok {
		return &bytesBlob{data: data}, nil
	}
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &cachingBlob{Blob: b, name: name, cache: s.cache}, nil
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.cache.Remove(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.cache.Remove(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// cachingBlob fills the cache when the whole blob is read at once.
type cachingBlob struct {
	Blob
	name  string
	cache *cache.LRU
}

func (b *cachingBlob) ReadAt(p []byte, off int64) (int, error) {
	n, err := b.Blob.ReadAt(p, off)
	if off == 0 && int64(n) == b.Size() {
		b.cache.Set(b.name, append([]byte(nil), p[:n]...))
	}
	return n, err
}

// Bytes copies the mapping of a Mappable blob into the cache. The returned
// slice is the cached copy and stays valid after Close.
func (b *cachingBlob) Bytes() ([]byte, error) {
	m, ok := b.Blob.(Mappable)
	if !ok {
		data := make([]byte, b.Size())
		n, err := b.ReadAt(data, 0)
		if n != len(data) {
			if err == nil {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		return data, nil
	}
	data, err := m.Bytes()
	if err != nil {
		return nil, err
	}
	data = append([]byte(nil), data...)
	b.cache.Set(b.name, data)
	return data, nil
}

var _ Store = (*CachingStore)(nil)

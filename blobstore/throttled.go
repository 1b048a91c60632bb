package blobstore

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ThrottleConfig holds the limits of a ThrottledStore.
type ThrottleConfig struct {
	// BytesPerSec caps the transfer rate of Put and ReadAt.
	// If 0, unlimited.
	BytesPerSec int64

	// MaxConcurrent caps the number of in-flight Put calls.
	// If 0, unlimited.
	MaxConcurrent int64
}

// ThrottledStore wraps a Store and limits its write and read throughput.
type ThrottledStore struct {
	inner   Store
	limiter *rate.Limiter       // nil if unlimited
	sem     *semaphore.Weighted // nil if unlimited
}

// NewThrottledStore wraps inner with the limits in cfg.
func NewThrottledStore(inner Store, cfg ThrottleConfig) *ThrottledStore {
	s := &ThrottledStore{inner: inner}
	if cfg.BytesPerSec > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.BytesPerSec), int(cfg.BytesPerSec))
	}
	if cfg.MaxConcurrent > 0 {
		s.sem = semaphore.NewWeighted(cfg.MaxConcurrent)
	}
	return s
}

// wait blocks until n bytes may be transferred. Requests larger than the
// burst are split, since the limiter rejects them outright.
func (s *ThrottledStore) wait(ctx context.Context, n int) error {
	if s.limiter == nil {
		return nil
	}
	burst := s.limiter.Burst()
	for n > 0 {
		chunk := min(n, burst)
		if err := s.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// Open opens a blob whose reads are throttled.
func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	if s.limiter == nil {
		return b, nil
	}
	return &throttledBlob{Blob: b, ctx: ctx, store: s}, nil
}

// Put waits for the bytes to be admitted, then writes through.
func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return err
		}
		defer s.sem.Release(1)
	}
	if err := s.wait(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

// Delete removes a blob. Deletes are not throttled.
func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

// List returns all blobs matching the prefix.
func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type throttledBlob struct {
	Blob
	ctx   context.Context
	store *ThrottledStore
}

func (b *throttledBlob) ReadAt(p []byte, off int64) (int, error) {
	if err := b.store.wait(b.ctx, len(p)); err != nil {
		return 0, err
	}
	return b.Blob.ReadAt(p, off)
}

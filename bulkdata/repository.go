package bulkdata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/meshdesc"
	"github.com/hupe1980/meshdesc/blobstore"
	"github.com/hupe1980/meshdesc/internal/compress"
	"github.com/hupe1980/meshdesc/internal/hash"
)

// Repository is a content-addressed store of bulk payloads. Blocks are kept
// under their hash, so writing an equal payload twice stores it once.
//
// Repository is safe for concurrent use if the underlying Store is.
type Repository struct {
	store blobstore.Store
	opts  repositoryOptions
}

// NewRepository creates a Repository on top of store.
func NewRepository(store blobstore.Store, optFns ...RepositoryOption) *Repository {
	o := repositoryOptions{
		prefix:      "bulk",
		concurrency: 8,
		logger:      meshdesc.NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	o.prefix = strings.Trim(o.prefix, "/")
	return &Repository{store: store, opts: o}
}

// Store returns the underlying blob store.
func (r *Repository) Store() blobstore.Store { return r.store }

func (r *Repository) refFor(b *BulkData) Ref {
	typ := compress.None
	if !b.IsEmpty() {
		typ = compress.Type(b.block[0])
	}
	return Ref{
		Hash:        b.Hash(),
		Key:         blockKey(r.opts.prefix, b.Hash()),
		Size:        b.Size(),
		StoredSize:  b.StoredSize(),
		Compression: typ.String(),
		GUID:        b.GUID().String(),
		GUIDIsHash:  b.GUIDIsHash(),
	}
}

// Put stores the payload of b unless a payload with the same hash is
// already present, and returns its Ref.
func (r *Repository) Put(ctx context.Context, b *BulkData) (Ref, error) {
	if b.IsEmpty() {
		return Ref{}, ErrEmpty
	}
	ref := r.refFor(b)

	exists, err := blobstore.Exists(ctx, r.store, ref.Key)
	if err == nil && !exists {
		err = r.store.Put(ctx, ref.Key, b.Block())
	}
	if err != nil {
		err = fmt.Errorf("bulkdata: put %s: %w", ref.Key, err)
		r.opts.logger.LogBulk(ctx, "put", b.IDString(), ref.Size, ref.StoredSize, err)
		return Ref{}, err
	}

	if exists {
		r.opts.logger.DebugContext(ctx, "bulk data deduplicated", "id", b.IDString(), "hash", ref.Hash)
	} else {
		r.opts.logger.LogBulk(ctx, "put", b.IDString(), ref.Size, ref.StoredSize, nil)
	}
	return ref, nil
}

// PutAll stores many payloads concurrently. The returned refs are in the
// order of bs. The first error cancels the remaining uploads.
func (r *Repository) PutAll(ctx context.Context, bs []*BulkData) ([]Ref, error) {
	refs := make([]Ref, len(bs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.concurrency)
	for i, b := range bs {
		g.Go(func() error {
			ref, err := r.Put(gctx, b)
			if err != nil {
				return err
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

// Get fetches the payload behind ref and verifies its hash.
func (r *Repository) Get(ctx context.Context, ref Ref) (*BulkData, error) {
	if ref.IsZero() {
		return New(), nil
	}
	block, err := blobstore.ReadAll(ctx, r.store, ref.Key)
	if err != nil {
		err = fmt.Errorf("bulkdata: get %s: %w", ref.Key, err)
		r.opts.logger.LogBulk(ctx, "get", ref.IDString(), ref.Size, ref.StoredSize, err)
		return nil, err
	}
	b, err := fromBlock(block, ref)
	r.opts.logger.LogBulk(ctx, "get", ref.IDString(), ref.Size, int64(len(block)), err)
	return b, err
}

// LoadMesh fetches the payload behind ref into md.
func (r *Repository) LoadMesh(ctx context.Context, ref Ref, md *meshdesc.MeshDescription) error {
	b, err := r.Get(ctx, ref)
	if err != nil {
		return err
	}
	return b.Load(md)
}

// Delete removes the payload behind ref. Payloads are shared by hash, so
// callers must make sure no other Ref still uses it.
func (r *Repository) Delete(ctx context.Context, ref Ref) error {
	if ref.IsZero() {
		return nil
	}
	return r.store.Delete(ctx, ref.Key)
}

// Hashes returns the hashes of all stored payloads.
func (r *Repository) Hashes(ctx context.Context) ([]string, error) {
	dir := ""
	if r.opts.prefix != "" {
		dir = r.opts.prefix + "/"
	}
	keys, err := r.store.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	hashes := make([]string, 0, len(keys))
	for _, k := range keys {
		name := k[strings.LastIndexByte(k, '/')+1:]
		if h, ok := strings.CutSuffix(name, ".bin"); ok && len(h) == 2*hash.DigestSize {
			hashes = append(hashes, h)
		}
	}
	return hashes, nil
}

// Prune deletes every payload whose hash is not in live and returns the
// number of deleted payloads.
func (r *Repository) Prune(ctx context.Context, live []Ref) (int, error) {
	keep := make(map[string]struct{}, len(live))
	for _, ref := range live {
		keep[ref.Hash] = struct{}{}
	}
	hashes, err := r.Hashes(ctx)
	if err != nil {
		return 0, err
	}

	var errs []error
	n := 0
	for _, h := range hashes {
		if _, ok := keep[h]; ok {
			continue
		}
		if err := r.store.Delete(ctx, blockKey(r.opts.prefix, h)); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

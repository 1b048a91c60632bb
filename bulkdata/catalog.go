package bulkdata

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/hupe1980/meshdesc/blobstore"
	"github.com/hupe1980/meshdesc/codec"
)

// Entry is the committed state of one asset.
type Entry struct {
	Asset   string `json:"asset"`
	Version uint64 `json:"version"`
	Ref     Ref    `json:"ref"`
}

// Catalog maps asset names to the Ref of their current payload.
//
// Commit is a compare-and-swap on the asset version: it succeeds only when
// expected equals the current version (0 for a new asset) and then bumps
// the version by one.
type Catalog interface {
	Lookup(ctx context.Context, asset string) (Entry, error)
	Commit(ctx context.Context, asset string, ref Ref, expected uint64) (Entry, error)
	Assets(ctx context.Context) ([]string, error)
}

// MemoryCatalog is an in-process Catalog.
type MemoryCatalog struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemoryCatalog returns an empty MemoryCatalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{entries: make(map[string]Entry)}
}

func (c *MemoryCatalog) Lookup(_ context.Context, asset string) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[asset]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
	}
	return e, nil
}

func (c *MemoryCatalog) Commit(_ context.Context, asset string, ref Ref, expected uint64) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur := c.entries[asset].Version; cur != expected {
		return Entry{}, fmt.Errorf("%w: %s is at version %d, expected %d", ErrConcurrentModification, asset, cur, expected)
	}
	e := Entry{Asset: asset, Version: expected + 1, Ref: ref}
	c.entries[asset] = e
	return e, nil
}

func (c *MemoryCatalog) Assets(context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// StoreCatalog keeps one manifest per asset in a blobstore.Store, encoded
// with a codec. The compare-and-swap is guarded by a process-local lock;
// writers in other processes need a Catalog with server-side conditions
// such as s3.DDBCatalog.
type StoreCatalog struct {
	mu     sync.Mutex
	store  blobstore.Store
	prefix string
	codec  codec.Codec
}

// NewStoreCatalog returns a StoreCatalog writing manifests under prefix.
// A nil codec selects codec.Default.
func NewStoreCatalog(store blobstore.Store, prefix string, c codec.Codec) *StoreCatalog {
	if c == nil {
		c = codec.Default
	}
	return &StoreCatalog{store: store, prefix: strings.Trim(prefix, "/"), codec: c}
}

func (c *StoreCatalog) key(asset string) string {
	return path.Join(c.prefix, asset+".json")
}

func (c *StoreCatalog) Lookup(ctx context.Context, asset string) (Entry, error) {
	data, err := blobstore.ReadAll(ctx, c.store, c.key(asset))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return Entry{}, fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
		}
		return Entry{}, err
	}
	var e Entry
	if err := c.codec.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("bulkdata: manifest %s: %w", asset, err)
	}
	return e, nil
}

func (c *StoreCatalog) Commit(ctx context.Context, asset string, ref Ref, expected uint64) (Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var cur uint64
	e, err := c.Lookup(ctx, asset)
	switch {
	case err == nil:
		cur = e.Version
	case !errors.Is(err, ErrAssetNotFound):
		return Entry{}, err
	}
	if cur != expected {
		return Entry{}, fmt.Errorf("%w: %s is at version %d, expected %d", ErrConcurrentModification, asset, cur, expected)
	}

	e = Entry{Asset: asset, Version: expected + 1, Ref: ref}
	data, err := c.codec.Marshal(e)
	if err != nil {
		return Entry{}, err
	}
	if err := c.store.Put(ctx, c.key(asset), data); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (c *StoreCatalog) Assets(ctx context.Context) ([]string, error) {
	dir := ""
	if c.prefix != "" {
		dir = c.prefix + "/"
	}
	keys, err := c.store.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		rel := strings.TrimPrefix(k, dir)
		if name, ok := strings.CutSuffix(rel, ".json"); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

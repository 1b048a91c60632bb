package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/meshdesc"
	"github.com/hupe1980/meshdesc/blobstore"
	miniostore "github.com/hupe1980/meshdesc/blobstore/minio"
	s3store "github.com/hupe1980/meshdesc/blobstore/s3"
	"github.com/hupe1980/meshdesc/bulkdata"
	"github.com/hupe1980/meshdesc/codec"
	"github.com/hupe1980/meshdesc/config"
)

const (
	bulkPrefix    = "bulk"
	catalogPrefix = "catalog"
)

// env is everything a command needs, built once from the configuration.
type env struct {
	cfg     config.Config
	logger  *meshdesc.Logger
	store   blobstore.Store
	repo    *bulkdata.Repository
	catalog bulkdata.Catalog
	out     io.Writer
	errOut  io.Writer
}

func newEnv(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) (*env, error) {
	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if bps := cfg.Store.RateLimit; bps > 0 {
		store = blobstore.NewThrottledStore(store, blobstore.ThrottleConfig{BytesPerSec: bps})
	}
	if n := cfg.Store.CacheBytes; n > 0 {
		store = blobstore.NewCachingStore(store, n)
	}

	catalog, err := openCatalog(ctx, cfg.Store, store)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "store opened", "kind", cfg.Store.Kind, "rate_limit", cfg.Store.RateLimit)
	return &env{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		repo:    bulkdata.NewRepository(store, bulkdata.WithPrefix(bulkPrefix), bulkdata.WithLogger(logger)),
		catalog: catalog,
		out:     stdout,
		errOut:  stderr,
	}, nil
}

func newLogger(cfg config.Log, w io.Writer) (*meshdesc.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case config.FormatJSON:
		return meshdesc.NewLogger(slog.NewJSONHandler(w, opts)), nil
	case config.FormatText:
		return meshdesc.NewLogger(slog.NewTextHandler(w, opts)), nil
	default:
		return meshdesc.NewPrettyLogger(w, level), nil
	}
}

func openStore(ctx context.Context, cfg config.Store) (blobstore.Store, error) {
	switch cfg.Kind {
	case config.StoreMemory:
		return blobstore.NewMemoryStore(), nil
	case config.StoreLocal:
		return blobstore.NewLocalStore(cfg.Root), nil
	case config.StoreMinio:
		return miniostore.New(ctx, miniostore.Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			Secure:    cfg.Secure,
			Bucket:    cfg.Bucket,
			Prefix:    cfg.Prefix,
		})
	case config.StoreS3:
		return s3store.New(ctx, cfg.Bucket, s3Options(cfg)...)
	}
	return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
}

func openCatalog(ctx context.Context, cfg config.Store, store blobstore.Store) (bulkdata.Catalog, error) {
	if cfg.Kind == config.StoreS3 && cfg.Table != "" {
		return s3store.NewDDBCatalogFromConfig(ctx, cfg.Table, s3Options(cfg)...)
	}
	return bulkdata.NewStoreCatalog(store, catalogPrefix, codec.IndentJSON{}), nil
}

func s3Options(cfg config.Store) []s3store.Option {
	var opts []s3store.Option
	if cfg.Prefix != "" {
		opts = append(opts, s3store.WithPrefix(cfg.Prefix))
	}
	if cfg.Region != "" {
		opts = append(opts, s3store.WithRegion(cfg.Region))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, s3store.WithEndpoint(cfg.Endpoint))
	}
	return opts
}

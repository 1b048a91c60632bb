package bulkdata

import (
	"github.com/hupe1980/meshdesc"
	"github.com/hupe1980/meshdesc/internal/compress"
	"github.com/hupe1980/meshdesc/persistence"
)

// Option configures a BulkData.
type Option func(*options)

type options struct {
	compression compress.Type
	hashAsGUID  bool
	version     persistence.FormatVersion
}

// WithCompression sets the block compression used by Save. Default: ZSTD.
func WithCompression(t compress.Type) Option {
	return func(o *options) {
		o.compression = t
	}
}

// WithHashAsGUID makes Save derive the GUID from the payload hash.
func WithHashAsGUID(enabled bool) Option {
	return func(o *options) {
		o.hashAsGUID = enabled
	}
}

// WithFormatVersion sets the mesh archive version written by Save.
func WithFormatVersion(v persistence.FormatVersion) Option {
	return func(o *options) {
		o.version = v
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		compression: compress.ZSTD,
		version:     persistence.CurrentFormatVersion,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// RepositoryOption configures a Repository.
type RepositoryOption func(*repositoryOptions)

type repositoryOptions struct {
	prefix      string
	concurrency int
	logger      *meshdesc.Logger
}

// WithPrefix sets the key prefix blocks are stored under. Default: "bulk/".
func WithPrefix(prefix string) RepositoryOption {
	return func(o *repositoryOptions) {
		o.prefix = prefix
	}
}

// WithConcurrency bounds the number of parallel uploads in PutAll. Default: 8.
func WithConcurrency(n int) RepositoryOption {
	return func(o *repositoryOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger for transfer events.
func WithLogger(logger *meshdesc.Logger) RepositoryOption {
	return func(o *repositoryOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

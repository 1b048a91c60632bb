package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/meshdesc/internal/compress"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	typ, err := cfg.Bulk.CompressionType()
	require.NoError(t, err)
	assert.Equal(t, compress.ZSTD, typ)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshtool.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = "debug"
format = "json"

[store]
kind = "s3"
bucket = "assets"
prefix = "meshes/"
region = "eu-central-1"
table = "meshdesc-catalog"
rate_limit = 1048576
cache_bytes = 67108864

[bulk]
compression = "lz4"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Log.Format)
	assert.Equal(t, StoreS3, cfg.Store.Kind)
	assert.Equal(t, "meshes/", cfg.Store.Prefix)
	assert.Equal(t, "meshdesc-catalog", cfg.Store.Table)
	assert.Equal(t, int64(1<<20), cfg.Store.RateLimit)
	assert.Equal(t, int64(64<<20), cfg.Store.CacheBytes)
	assert.True(t, cfg.Bulk.HashAsGUID, "unset keys keep their defaults")

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	typ, err := cfg.Bulk.CompressionType()
	require.NoError(t, err)
	assert.Equal(t, compress.LZ4, typ)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"syntax", "[log\n", "line"},
		{"unknown key", "[store]\ncolour = 1\n", "strict mode"},
		{"store kind", "[store]\nkind = \"ftp\"\n", `unknown store kind "ftp"`},
		{"local root", "[store]\nkind = \"local\"\nroot = \"\"\n", "needs a root"},
		{"minio", "[store]\nkind = \"minio\"\n", "needs an endpoint"},
		{"table", "[store]\ntable = \"t\"\n", "only supported by the s3 store"},
		{"rate", "[store]\nrate_limit = -1\n", "negative rate limit"},
		{"cache", "[store]\ncache_bytes = -1\n", "negative cache size"},
		{"level", "[log]\nlevel = \"loud\"\n", "unknown log level"},
		{"format", "[log]\nformat = \"xml\"\n", "unknown log format"},
		{"compression", "[bulk]\ncompression = \"brotli\"\n", "brotli"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Store = Store{Kind: StoreMinio, Endpoint: "localhost:9000", Bucket: "b", AccessKey: "k", SecretKey: "s"}

	data, err := cfg.Marshal()
	require.NoError(t, err)
	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

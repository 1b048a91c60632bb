// Package config loads the TOML configuration of the meshtool command.
//
//	[log]
//	level = "info"
//	format = "pretty"
//
//	[store]
//	kind = "local"
//	root = "./assets"
//	rate_limit = 8388608
//
//	[bulk]
//	compression = "zstd"
//	hash_as_guid = true
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/hupe1980/meshdesc/internal/compress"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreLocal  = "local"
	StoreMinio  = "minio"
	StoreS3     = "s3"
)

// Log formats.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Config is the root of the configuration file.
type Config struct {
	Log   Log   `toml:"log"`
	Store Store `toml:"store"`
	Bulk  Bulk  `toml:"bulk"`
}

// Log configures the logger.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Store selects and configures the blob store bulk payloads go to.
type Store struct {
	Kind string `toml:"kind"`

	// local
	Root string `toml:"root,omitempty"`

	// minio and s3
	Endpoint  string `toml:"endpoint,omitempty"`
	Bucket    string `toml:"bucket,omitempty"`
	Prefix    string `toml:"prefix,omitempty"`
	AccessKey string `toml:"access_key,omitempty"`
	SecretKey string `toml:"secret_key,omitempty"`
	Secure    bool   `toml:"secure,omitempty"`
	Region    string `toml:"region,omitempty"`

	// Table names the DynamoDB catalog table (s3 only). Without it the
	// catalog is kept as manifests in the store itself.
	Table string `toml:"table,omitempty"`

	// RateLimit caps uploads and reads in bytes per second; 0 is unlimited.
	RateLimit int64 `toml:"rate_limit,omitempty"`

	// CacheBytes keeps up to this many bytes of read payloads in memory.
	CacheBytes int64 `toml:"cache_bytes,omitempty"`
}

// Bulk configures how meshes are packed.
type Bulk struct {
	Compression string `toml:"compression"`
	HashAsGUID  bool   `toml:"hash_as_guid"`
}

// Default returns a configuration that stores payloads under ./assets.
func Default() Config {
	return Config{
		Log: Log{
			Level:  "info",
			Format: FormatPretty,
		},
		Store: Store{
			Kind: StoreLocal,
			Root: "assets",
		},
		Bulk: Bulk{
			Compression: compress.ZSTD.String(),
			HashAsGUID:  true,
		},
	}
}

// Load reads the file at path over the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes a TOML document over the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("config: line %d column %d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case FormatText, FormatJSON, FormatPretty:
	default:
		errs = append(errs, fmt.Errorf("config: unknown log format %q", c.Log.Format))
	}

	switch c.Store.Kind {
	case StoreMemory:
	case StoreLocal:
		if c.Store.Root == "" {
			errs = append(errs, errors.New("config: local store needs a root"))
		}
	case StoreMinio:
		if c.Store.Endpoint == "" {
			errs = append(errs, errors.New("config: minio store needs an endpoint"))
		}
		if c.Store.Bucket == "" {
			errs = append(errs, errors.New("config: minio store needs a bucket"))
		}
	case StoreS3:
		if c.Store.Bucket == "" {
			errs = append(errs, errors.New("config: s3 store needs a bucket"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown store kind %q", c.Store.Kind))
	}
	if c.Store.Table != "" && c.Store.Kind != StoreS3 {
		errs = append(errs, fmt.Errorf("config: table is only supported by the s3 store"))
	}
	if c.Store.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("config: negative rate limit %d", c.Store.RateLimit))
	}
	if c.Store.CacheBytes < 0 {
		errs = append(errs, fmt.Errorf("config: negative cache size %d", c.Store.CacheBytes))
	}

	if _, err := c.Bulk.CompressionType(); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	return errors.Join(errs...)
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", l.Level)
	}
	return level, nil
}

// CompressionType parses Compression.
func (b Bulk) CompressionType() (compress.Type, error) {
	return compress.ParseType(b.Compression)
}

// Package compress frames bulk payloads as single compressed blocks.
//
// Block format: [Type uint8][UncompressedSize uint32][StoredSize uint32][Data...]
// A block whose compression did not pay off is stored with Type None.
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies the block compression algorithm.
type Type uint8

const (
	// None stores the payload as is.
	None Type = 0
	// LZ4 is fast block compression.
	LZ4 Type = 1
	// ZSTD trades speed for a better ratio.
	ZSTD Type = 2
)

// String returns the configuration name of t.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// ParseType parses a configuration name ("none", "lz4", "zstd").
func ParseType(s string) (Type, error) {
	switch s {
	case "none", "":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	}
	return None, fmt.Errorf("compress: unknown compression %q", s)
}

// HeaderSize is the size of the block header in bytes.
const HeaderSize = 9

// MaxBlockSize bounds the uncompressed size accepted by Decode.
const MaxBlockSize = 1 << 30

var (
	// ErrShortBlock is returned for blocks smaller than their header claims.
	ErrShortBlock = errors.New("compress: block too small")
	// ErrSizeMismatch is returned when a block decodes to an unexpected size.
	ErrSizeMismatch = errors.New("compress: decompressed size mismatch")
	// ErrUnknownType is returned for blocks with an unknown compression type.
	ErrUnknownType = errors.New("compress: unknown compression type")
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Encode compresses data into a single block. If compression saves less
// than 10% the block is stored uncompressed.
func Encode(data []byte, t Type) ([]byte, error) {
	var (
		compressed []byte
		err        error
	)
	switch t {
	case None:
	case LZ4:
		compressed, err = encodeLZ4(data)
	case ZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		return frame(None, len(data), data), nil
	}
	return frame(t, len(data), compressed), nil
}

func frame(t Type, size int, payload []byte) []byte {
	out := make([]byte, HeaderSize+len(payload))
	out[0] = byte(t)
	binary.LittleEndian.PutUint32(out[1:], uint32(size))
	binary.LittleEndian.PutUint32(out[5:], uint32(len(payload)))
	copy(out[HeaderSize:], payload)
	return out
}

func encodeLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

// Decode returns the payload of a block produced by Encode and the
// algorithm it was stored with.
func Decode(block []byte) ([]byte, Type, error) {
	if len(block) < HeaderSize {
		return nil, None, ErrShortBlock
	}
	t := Type(block[0])
	size := binary.LittleEndian.Uint32(block[1:])
	stored := binary.LittleEndian.Uint32(block[5:])
	if size > MaxBlockSize {
		return nil, t, fmt.Errorf("%w: %d bytes", ErrShortBlock, size)
	}
	if uint64(len(block)) < HeaderSize+uint64(stored) {
		return nil, t, ErrShortBlock
	}
	payload := block[HeaderSize : HeaderSize+stored]

	switch t {
	case None:
		if stored != size {
			return nil, t, ErrSizeMismatch
		}
		return payload, t, nil

	case LZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, t, err
		}
		if uint32(n) != size {
			return nil, t, ErrSizeMismatch
		}
		return out, t, nil

	case ZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(payload, make([]byte, 0, size))
		if err != nil {
			return nil, t, err
		}
		if uint32(len(out)) != size {
			return nil, t, ErrSizeMismatch
		}
		return out, t, nil
	}
	return nil, t, fmt.Errorf("%w: %d", ErrUnknownType, t)
}

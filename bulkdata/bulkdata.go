package bulkdata

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/hupe1980/meshdesc"
	"github.com/hupe1980/meshdesc/internal/compress"
	"github.com/hupe1980/meshdesc/internal/hash"
)

// BulkData is a mesh archive held as a compressed block.
//
// The zero value is not usable; create one with New.
type BulkData struct {
	opts options

	block      []byte // compressed archive, nil when empty
	size       int64  // uncompressed archive size
	digest     hash.Digest
	guid       uuid.UUID
	guidIsHash bool
}

// New returns an empty BulkData.
func New(optFns ...Option) *BulkData {
	o := applyOptions(optFns)
	return &BulkData{
		opts:       o,
		guidIsHash: o.hashAsGUID,
	}
}

// Save replaces the payload with the archive of md. An empty mesh leaves
// the payload empty. The GUID is regenerated: derived from the payload when
// the GUID is hash based, random otherwise.
func (b *BulkData) Save(md *meshdesc.MeshDescription) error {
	b.Empty()

	if !md.IsEmpty() {
		var buf bytes.Buffer
		if err := md.Save(&buf, meshdesc.WithFormatVersion(b.opts.version)); err != nil {
			return fmt.Errorf("bulkdata: save mesh: %w", err)
		}
		block, err := compress.Encode(buf.Bytes(), b.opts.compression)
		if err != nil {
			return fmt.Errorf("bulkdata: compress: %w", err)
		}
		b.block = block
		b.size = int64(buf.Len())
		b.digest = hash.Sum(buf.Bytes())
	}

	if b.guidIsHash {
		b.UseHashAsGUID()
	} else {
		b.guid = uuid.New()
	}
	return nil
}

// Load replaces the contents of md with the payload. An empty payload
// leaves md empty.
func (b *BulkData) Load(md *meshdesc.MeshDescription) error {
	md.Empty()
	if b.IsEmpty() {
		return nil
	}

	archive, _, err := compress.Decode(b.block)
	if err != nil {
		return fmt.Errorf("bulkdata: decompress: %w", err)
	}
	if err := md.Load(bytes.NewReader(archive)); err != nil {
		return fmt.Errorf("bulkdata: load mesh: %w", err)
	}
	return nil
}

// UseHashAsGUID derives the GUID from the SHA-1 of the payload. The first
// word of the GUID is the XOR of the first and fifth hash words; the rest are
// the second to fourth words. An empty payload yields the zero GUID and does
// not switch the GUID to hash mode.
func (b *BulkData) UseHashAsGUID() {
	var words [5]uint32
	if !b.IsEmpty() {
		b.guidIsHash = true
		words = b.digest.Words()
	}

	var g uuid.UUID
	binary.LittleEndian.PutUint32(g[0:], words[0]^words[4])
	binary.LittleEndian.PutUint32(g[4:], words[1])
	binary.LittleEndian.PutUint32(g[8:], words[2])
	binary.LittleEndian.PutUint32(g[12:], words[3])
	b.guid = g
}

// IDString returns the GUID in its canonical form, suffixed with "X" when
// the GUID is derived from the payload hash.
func (b *BulkData) IDString() string {
	s := b.guid.String()
	if b.guidIsHash {
		s += "X"
	}
	return s
}

// GUID returns the payload identity.
func (b *BulkData) GUID() uuid.UUID { return b.guid }

// GUIDIsHash reports whether the GUID is derived from the payload hash.
func (b *BulkData) GUIDIsHash() bool { return b.guidIsHash }

// Hash returns the hex SHA-1 of the uncompressed archive, or "" when empty.
func (b *BulkData) Hash() string {
	if b.IsEmpty() {
		return ""
	}
	return b.digest.String()
}

// Size returns the uncompressed archive size in bytes.
func (b *BulkData) Size() int64 { return b.size }

// StoredSize returns the compressed block size in bytes.
func (b *BulkData) StoredSize() int64 { return int64(len(b.block)) }

// Block returns the compressed block. The slice must not be modified.
func (b *BulkData) Block() []byte { return b.block }

// IsEmpty reports whether the BulkData holds no payload.
func (b *BulkData) IsEmpty() bool { return len(b.block) == 0 }

// Empty drops the payload. The GUID is kept.
func (b *BulkData) Empty() {
	b.block = nil
	b.size = 0
	b.digest = hash.Digest{}
}

// fromBlock rebuilds a BulkData around a fetched block and checks it
// against ref.
func fromBlock(block []byte, ref Ref) (*BulkData, error) {
	archive, typ, err := compress.Decode(block)
	if err != nil {
		return nil, fmt.Errorf("bulkdata: decompress %s: %w", ref.Key, err)
	}
	digest := hash.Sum(archive)
	if digest.String() != ref.Hash {
		return nil, fmt.Errorf("%w: %s has %s", ErrHashMismatch, ref.Key, digest)
	}

	guid, err := uuid.Parse(ref.GUID)
	if err != nil {
		return nil, fmt.Errorf("bulkdata: ref %s: %w", ref.Key, err)
	}

	b := New(WithCompression(typ), WithHashAsGUID(ref.GUIDIsHash))
	b.block = block
	b.size = int64(len(archive))
	b.digest = digest
	b.guid = guid
	return b, nil
}

package bulkdata

import (
	"fmt"
	"path"
)

// Ref is a deferred reference to a stored payload. Two Refs with the same
// Hash name equal meshes, whatever their Key or GUID.
type Ref struct {
	Hash        string `json:"hash"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	StoredSize  int64  `json:"stored_size"`
	Compression string `json:"compression"`
	GUID        string `json:"guid"`
	GUIDIsHash  bool   `json:"guid_is_hash,omitempty"`
}

// IsZero reports whether r references nothing.
func (r Ref) IsZero() bool { return r.Hash == "" }

// SameContent reports whether r and o reference equal payloads.
func (r Ref) SameContent(o Ref) bool {
	return !r.IsZero() && r.Hash == o.Hash
}

// IDString returns the GUID in the form BulkData.IDString uses.
func (r Ref) IDString() string {
	if r.GUIDIsHash {
		return r.GUID + "X"
	}
	return r.GUID
}

func (r Ref) String() string {
	return fmt.Sprintf("%s (%d bytes, %d stored)", r.Key, r.Size, r.StoredSize)
}

// blockKey fans blocks out by the first two hex digits of their hash.
func blockKey(prefix, digest string) string {
	return path.Join(prefix, digest[:2], digest+".bin")
}

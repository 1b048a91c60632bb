package persistence

import "errors"

const (
	// MagicNumber identifies mesh description archives (ASCII: "MSHD").
	MagicNumber = 0x4448534D

	// MaxCount bounds every length prefix read from an archive.
	MaxCount = 1 << 28
)

// FormatVersion selects the body layout of an archive.
type FormatVersion uint32

const (
	// FormatVersionLegacyPolygons stores polygon perimeters only. Triangles
	// are rebuilt by triangulating every polygon on load.
	FormatVersionLegacyPolygons FormatVersion = 1
	// FormatVersionTriangles stores the triangle array. Polygons made of a
	// single triangle omit their perimeter, which is rebuilt from the
	// triangle on load.
	FormatVersionTriangles FormatVersion = 2

	// CurrentFormatVersion is written by default.
	CurrentFormatVersion = FormatVersionTriangles
)

// IsSupported reports whether v is a known format version.
func (v FormatVersion) IsSupported() bool {
	return v == FormatVersionLegacyPolygons || v == FormatVersionTriangles
}

// HasTriangles reports whether archives of this version carry the triangle array.
func (v FormatVersion) HasTriangles() bool {
	return v >= FormatVersionTriangles
}

func (v FormatVersion) String() string {
	switch v {
	case FormatVersionLegacyPolygons:
		return "legacy-polygons"
	case FormatVersionTriangles:
		return "triangles"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrUnsupportedVersion = errors.New("unsupported version")
	ErrCorrupt            = errors.New("corrupt archive")
)

// FileHeader is the 32-byte header at the start of every archive.
type FileHeader struct {
	Magic    uint32        // 0x4448534D ("MSHD")
	Version  FormatVersion // Body layout
	Flags    uint32        // Reserved for writer-specific flags
	Padding  [4]byte
	Reserved [16]byte // Future use
}

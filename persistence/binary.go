package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// Writer writes little-endian primitives with a sticky error.
type Writer struct {
	w   io.Writer
	buf [8]byte
	n   int64
	err error
}

// NewWriter creates a new binary writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered, if any.
func (bw *Writer) Err() error { return bw.err }

// Written returns the number of bytes written so far.
func (bw *Writer) Written() int64 { return bw.n }

func (bw *Writer) write(p []byte) {
	if bw.err != nil {
		return
	}
	n, err := bw.w.Write(p)
	bw.n += int64(n)
	bw.err = err
}

// Write implements io.Writer so nested encoders can share the sticky error.
func (bw *Writer) Write(p []byte) (int, error) {
	if bw.err != nil {
		return 0, bw.err
	}
	bw.write(p)
	if bw.err != nil {
		return 0, bw.err
	}
	return len(p), nil
}

// WriteHeader writes the file header with the magic number filled in.
func (bw *Writer) WriteHeader(header *FileHeader) error {
	header.Magic = MagicNumber
	if bw.err != nil {
		return bw.err
	}
	if err := binary.Write(bw.w, binary.LittleEndian, header); err != nil {
		bw.err = err
		return err
	}
	bw.n += int64(binary.Size(header))
	return nil
}

// Uint8 writes a single byte.
func (bw *Writer) Uint8(v uint8) {
	bw.buf[0] = v
	bw.write(bw.buf[:1])
}

// Bool writes a bool as one byte.
func (bw *Writer) Bool(v bool) {
	if v {
		bw.Uint8(1)
		return
	}
	bw.Uint8(0)
}

// Uint32 writes a uint32.
func (bw *Writer) Uint32(v uint32) {
	binary.LittleEndian.PutUint32(bw.buf[:4], v)
	bw.write(bw.buf[:4])
}

// Int32 writes an int32.
func (bw *Writer) Int32(v int32) { bw.Uint32(uint32(v)) }

// Uint64 writes a uint64.
func (bw *Writer) Uint64(v uint64) {
	binary.LittleEndian.PutUint64(bw.buf[:8], v)
	bw.write(bw.buf[:8])
}

// Float32 writes a float32 by its IEEE-754 bits.
func (bw *Writer) Float32(v float32) { bw.Uint32(math.Float32bits(v)) }

// Count writes a length prefix.
func (bw *Writer) Count(n int) {
	if n < 0 || n > MaxCount {
		if bw.err == nil {
			bw.err = fmt.Errorf("%w: count %d out of range", ErrCorrupt, n)
		}
		return
	}
	bw.Uint32(uint32(n))
}

// Bytes writes a length-prefixed byte slice.
func (bw *Writer) Bytes(p []byte) {
	bw.Count(len(p))
	bw.write(p)
}

// Text writes a length-prefixed string.
func (bw *Writer) Text(s string) {
	bw.Count(len(s))
	if bw.err == nil && len(s) > 0 {
		if sw, ok := bw.w.(io.StringWriter); ok {
			n, err := sw.WriteString(s)
			bw.n += int64(n)
			bw.err = err
			return
		}
		bw.write([]byte(s))
	}
}

// Int32s writes a length-prefixed int32 slice.
func (bw *Writer) Int32s(s []int32) {
	bw.Count(len(s))
	for _, v := range s {
		bw.Int32(v)
	}
}

// Float32s writes a length-prefixed float32 slice.
func (bw *Writer) Float32s(s []float32) {
	bw.Count(len(s))
	for _, v := range s {
		bw.Float32(v)
	}
}

// WriteIDs writes a length-prefixed slice of any int32-backed ID type.
func WriteIDs[ID ~int32](bw *Writer, ids []ID) {
	bw.Count(len(ids))
	for _, id := range ids {
		bw.Int32(int32(id))
	}
}

// Reader reads little-endian primitives with a sticky error.
type Reader struct {
	r   io.Reader
	buf [8]byte
	n   int64
	err error
}

// NewReader creates a new binary reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the first error encountered, if any. A short read is
// reported as ErrCorrupt.
func (br *Reader) Err() error { return br.err }

// BytesRead returns the number of bytes consumed so far.
func (br *Reader) BytesRead() int64 { return br.n }

// Fail records err as the sticky error unless one is already set.
func (br *Reader) Fail(err error) {
	if br.err == nil {
		br.err = err
	}
}

func (br *Reader) read(p []byte) bool {
	if br.err != nil {
		return false
	}
	if _, err := io.ReadFull(br.r, p); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = fmt.Errorf("%w: unexpected end of data", ErrCorrupt)
		}
		br.err = err
		return false
	}
	br.n += int64(len(p))
	return true
}

// Read implements io.Reader. Unlike the typed readers it fills p
// completely or fails.
func (br *Reader) Read(p []byte) (int, error) {
	if !br.read(p) {
		return 0, br.err
	}
	return len(p), nil
}

// ReadHeader reads and validates the file header.
func (br *Reader) ReadHeader() (*FileHeader, error) {
	if br.err != nil {
		return nil, br.err
	}
	var header FileHeader
	if err := binary.Read(br.r, binary.LittleEndian, &header); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = fmt.Errorf("%w: truncated header", ErrCorrupt)
		}
		br.err = err
		return nil, err
	}
	br.n += int64(binary.Size(&header))
	if header.Magic != MagicNumber {
		br.err = fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, header.Magic)
		return nil, br.err
	}
	if !header.Version.IsSupported() {
		br.err = fmt.Errorf("%w: got %d", ErrUnsupportedVersion, header.Version)
		return nil, br.err
	}
	return &header, nil
}

// Uint8 reads a single byte.
func (br *Reader) Uint8() uint8 {
	if !br.read(br.buf[:1]) {
		return 0
	}
	return br.buf[0]
}

// Bool reads a one-byte bool.
func (br *Reader) Bool() bool {
	switch br.Uint8() {
	case 0:
		return false
	case 1:
		return true
	default:
		br.Fail(fmt.Errorf("%w: invalid bool", ErrCorrupt))
		return false
	}
}

// Uint32 reads a uint32.
func (br *Reader) Uint32() uint32 {
	if !br.read(br.buf[:4]) {
		return 0
	}
	return binary.LittleEndian.Uint32(br.buf[:4])
}

// Int32 reads an int32.
func (br *Reader) Int32() int32 { return int32(br.Uint32()) }

// Uint64 reads a uint64.
func (br *Reader) Uint64() uint64 {
	if !br.read(br.buf[:8]) {
		return 0
	}
	return binary.LittleEndian.Uint64(br.buf[:8])
}

// Float32 reads a float32.
func (br *Reader) Float32() float32 { return math.Float32frombits(br.Uint32()) }

// readChunk caps up-front slice allocation while decoding; slices grow
// only as data actually arrives.
const readChunk = 1 << 12

// Count reads a length prefix and checks it against MaxCount.
func (br *Reader) Count() int {
	n := br.Uint32()
	if n > MaxCount {
		br.Fail(fmt.Errorf("%w: count %d exceeds limit", ErrCorrupt, n))
		return 0
	}
	return int(n)
}

// Bytes reads a length-prefixed byte slice.
func (br *Reader) Bytes() []byte {
	n := br.Count()
	if n == 0 || br.err != nil {
		return nil
	}
	p := make([]byte, 0, min(n, readChunk))
	for len(p) < n {
		k := min(n-len(p), readChunk)
		p = append(p, make([]byte, k)...)
		if !br.read(p[len(p)-k:]) {
			return nil
		}
	}
	return p
}

// Text reads a length-prefixed string.
func (br *Reader) Text() string {
	return string(br.Bytes())
}

// Int32s reads a length-prefixed int32 slice.
func (br *Reader) Int32s() []int32 {
	n := br.Count()
	if n == 0 || br.err != nil {
		return nil
	}
	s := make([]int32, 0, min(n, readChunk))
	for range n {
		if s = append(s, br.Int32()); br.err != nil {
			return nil
		}
	}
	return s
}

// Float32s reads a length-prefixed float32 slice.
func (br *Reader) Float32s() []float32 {
	n := br.Count()
	if n == 0 || br.err != nil {
		return nil
	}
	s := make([]float32, 0, min(n, readChunk))
	for range n {
		if s = append(s, br.Float32()); br.err != nil {
			return nil
		}
	}
	return s
}

// ReadIDs reads a length-prefixed slice of any int32-backed ID type.
func ReadIDs[ID ~int32](br *Reader) []ID {
	n := br.Count()
	if n == 0 || br.err != nil {
		return nil
	}
	ids := make([]ID, 0, min(n, readChunk))
	for range n {
		if ids = append(ids, ID(br.Int32())); br.err != nil {
			return nil
		}
	}
	return ids
}

// ArchiveWriter frames a Writer with a header and a CRC32 trailer.
type ArchiveWriter struct {
	*Writer
	raw io.Writer
	cw  *ChecksumWriter
}

// NewArchiveWriter writes the header for version and returns a writer for the body.
func NewArchiveWriter(w io.Writer, version FormatVersion) (*ArchiveWriter, error) {
	cw := NewChecksumWriter(w)
	aw := &ArchiveWriter{Writer: NewWriter(cw), raw: w, cw: cw}
	if err := aw.WriteHeader(&FileHeader{Version: version}); err != nil {
		return nil, err
	}
	return aw, nil
}

// Close writes the checksum trailer. It does not close the underlying writer.
func (aw *ArchiveWriter) Close() error {
	if aw.err != nil {
		return aw.err
	}
	var trailer [4]byte
	binary.LittleEndian.PutUint32(trailer[:], aw.cw.Sum())
	n, err := aw.raw.Write(trailer[:])
	aw.n += int64(n)
	aw.err = err
	return err
}

// ArchiveReader reads an archive written by ArchiveWriter.
type ArchiveReader struct {
	*Reader
	Header *FileHeader
	raw    io.Reader
	cr     *ChecksumReader
}

// NewArchiveReader reads and validates the header.
func NewArchiveReader(r io.Reader) (*ArchiveReader, error) {
	cr := NewChecksumReader(r)
	ar := &ArchiveReader{Reader: NewReader(cr), raw: r, cr: cr}
	header, err := ar.ReadHeader()
	if err != nil {
		return nil, err
	}
	ar.Header = header
	return ar, nil
}

// Verify reads the trailer and compares it with the checksum of everything read.
func (ar *ArchiveReader) Verify() error {
	if ar.err != nil {
		return ar.err
	}
	var trailer [4]byte
	if _, err := io.ReadFull(ar.raw, trailer[:]); err != nil {
		return fmt.Errorf("%w: missing checksum trailer", ErrCorrupt)
	}
	return ar.cr.Verify(binary.LittleEndian.Uint32(trailer[:]))
}

// SaveToFile writes a file atomically through a temp file and rename.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	tmpName = ""
	return nil
}

// LoadFromFile opens filename and hands a buffered reader to readFunc.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := bufio.NewReaderSize(f, 256*1024)
	return readFunc(buf)
}

package persistence

import (
	"errors"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
)

// Archives end with a CRC32 (IEEE) of every byte before the trailer. It
// catches accidental corruption only.

// ChecksumWriter forwards writes to an underlying writer and hashes every
// byte that was written.
type ChecksumWriter struct {
	w   io.Writer
	sum hash.Hash32
}

// NewChecksumWriter wraps w.
func NewChecksumWriter(w io.Writer) *ChecksumWriter {
	return &ChecksumWriter{w: w, sum: crc32.NewIEEE()}
}

func (cw *ChecksumWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.sum.Write(p[:n])
	return n, err
}

// Sum returns the checksum of the bytes written so far.
func (cw *ChecksumWriter) Sum() uint32 { return cw.sum.Sum32() }

// ChecksumReader hashes every byte read through it.
type ChecksumReader struct {
	r   io.Reader
	sum hash.Hash32
}

// NewChecksumReader wraps r.
func NewChecksumReader(r io.Reader) *ChecksumReader {
	return &ChecksumReader{r: r, sum: crc32.NewIEEE()}
}

func (cr *ChecksumReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.sum.Write(p[:n])
	return n, err
}

// Sum returns the checksum of the bytes read so far.
func (cr *ChecksumReader) Sum() uint32 { return cr.sum.Sum32() }

// Verify compares the archive trailer against the bytes read so far.
func (cr *ChecksumReader) Verify(trailer uint32) error {
	if got := cr.Sum(); got != trailer {
		return &ChecksumMismatchError{Expected: trailer, Actual: got}
	}
	return nil
}

// ChecksumMismatchError reports an archive whose trailer does not match its
// contents.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("persistence: archive checksum 0x%08x does not match trailer 0x%08x", e.Actual, e.Expected)
}

// IsChecksumMismatch reports whether err wraps a ChecksumMismatchError.
func IsChecksumMismatch(err error) bool {
	var target *ChecksumMismatchError
	return errors.As(err, &target)
}

// Package mmap maps bulk payload files read-only into memory.
//
// LocalStore serves blobs from a mapping so that loading a mesh archive
// reads straight from the page cache:
//
//	m, err := mmap.Open(path)
//	if err != nil { ... }
//	defer m.Close()
//	archive := m.Bytes()
//
// Unix platforms use mmap(2) and madvise(2); Windows uses
// CreateFileMapping/MapViewOfFile and ignores access hints. Bytes must not
// be used after Close.
package mmap

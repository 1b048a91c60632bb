// Package blobstore provides the storage abstraction for bulk mesh payloads.
//
// Store is the interface for reading and writing immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, for tests and one-shot tools
//   - LocalStore: local filesystem with mmap reads and atomic writes
//   - ThrottledStore: byte-rate and concurrency limits around another Store
//   - minio.Store: MinIO or any S3-compatible endpoint
//   - s3.Store: Amazon S3 with multipart uploads
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Blobs that are backed by memory may implement Mappable so ReadAll can
// skip the intermediate copy through ReadAt.
package blobstore

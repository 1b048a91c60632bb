// Package bulkdata stores serialized meshes out of line.
//
// A BulkData holds a mesh archive as a compressed block together with a GUID
// that identifies the payload. The GUID is either random, regenerated on
// every Save, or derived from the SHA-1 of the archive so equal meshes share
// an identity and derived-data caches can key on it.
//
// A Repository writes blocks to a blobstore.Store under their content hash,
// which deduplicates equal payloads. A Ref is the deferred reference returned
// by the Repository; Catalogs map asset names to the current Ref.
//
//	bulk := bulkdata.New(bulkdata.WithHashAsGUID(true))
//	if err := bulk.Save(md); err != nil { ... }
//	ref, err := repo.Put(ctx, bulk)
//	entry, err := catalog.Commit(ctx, "props/crate", ref, prev.Version)
package bulkdata

// Package s3 provides an S3 implementation of the blobstore.Store interface
// and a DynamoDB-backed bulkdata.Catalog.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("meshes/"),
//	    s3.WithRegion("us-east-1"),
//	)
//	catalog, err := s3.NewDDBCatalogFromConfig(ctx, "meshdesc-catalog")
//
//	repo := bulkdata.NewRepository(store)
//	ref, err := repo.Put(ctx, bulk)
//	_, err = catalog.Commit(ctx, "props/crate", ref, 0)
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads with CRC32C checksums for large payloads
//   - Automatic pagination for listing
//   - Conditional writes for concurrent catalog commits
package s3

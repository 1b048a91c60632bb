// Package minio provides a blobstore.Store implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible systems such as Ceph, SeaweedFS
// and Garage, without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.New(ctx, minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "assets",
//	    Prefix:    "meshes/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	repo := bulkdata.NewRepository(store)
//
// Blob reads are ranged GETs; Put is a single PutObject call.
package minio

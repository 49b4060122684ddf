// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("runs/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	src := fimi.ReadBlob(ctx, store, "retail.dat.zst")
//
// # Features
//
//   - Streaming reads of whole objects
//   - Multipart streaming uploads, published on Close
//   - Aborted uploads leave no object behind
//   - Configurable prefix for multi-tenant isolation
package s3

// Package blobstore provides storage abstraction for transaction datasets
// and mined pattern files.
//
// BlobStore is the interface for reading and writing whole blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem, publishing by rename
//   - MemoryStore: In-memory, for tests
//   - s3.Store: Amazon S3 with multipart streaming uploads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Write Semantics
//
// A WritableBlob becomes visible only when closed. Aborting it, or failing
// before Close, leaves no partial blob behind:
//
//	w, _ := store.Create(ctx, "patterns.txt")
//	if _, err := w.Write(data); err != nil {
//	    _ = w.Abort()
//	    return err
//	}
//	return w.Close()
package blobstore

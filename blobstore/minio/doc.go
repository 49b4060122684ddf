// Package minio stores datasets and pattern files in MinIO or any other
// S3-compatible object store (Ceph, Garage, SeaweedFS) through the MinIO
// client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	if err != nil {
//	    return err
//	}
//	store := minioblob.NewStore(client, "mining", "runs/")
//	src := fimi.ReadBlob(ctx, store, "retail.dat")
//
// Uploads stream through a pipe with an unknown size, so the client picks
// multipart uploads on its own. An aborted blob fails its upload and no
// object is created.
package minio

package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/fimgo/blobstore"
	minioblob "github.com/hupe1980/fimgo/blobstore/minio"
	s3blob "github.com/hupe1980/fimgo/blobstore/s3"
)

// location is a blob named by a CLI argument.
type location struct {
	store blobstore.BlobStore
	name  string
}

// locate resolves a path or URL to a store and a blob name:
//
//	retail.dat                        local file
//	s3://bucket/key                   AWS S3, default credential chain
//	minio://host:port/bucket/key      MinIO, MINIO_ACCESS_KEY/MINIO_SECRET_KEY
func locate(ctx context.Context, arg string) (location, error) {
	u, err := url.Parse(arg)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// plain path, Windows drive letters included
		return location{
			store: blobstore.NewLocalStore(filepath.Dir(arg)),
			name:  filepath.Base(arg),
		}, nil
	}

	key := strings.TrimPrefix(u.Path, "/")
	switch u.Scheme {
	case "file":
		return location{
			store: blobstore.NewLocalStore(filepath.Dir(u.Path)),
			name:  filepath.Base(u.Path),
		}, nil

	case "s3":
		if u.Host == "" || key == "" {
			return location{}, fmt.Errorf("invalid s3 location %q: want s3://bucket/key", arg)
		}
		store, err := s3blob.New(ctx, u.Host)
		if err != nil {
			return location{}, err
		}
		return location{store: store, name: key}, nil

	case "minio":
		bucket, name, ok := strings.Cut(key, "/")
		if u.Host == "" || !ok || name == "" {
			return location{}, fmt.Errorf("invalid minio location %q: want minio://host/bucket/key", arg)
		}
		client, err := minio.New(u.Host, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: os.Getenv("MINIO_SECURE") == "true",
		})
		if err != nil {
			return location{}, err
		}
		return location{store: minioblob.NewStore(client, bucket, ""), name: name}, nil

	default:
		return location{}, fmt.Errorf("unsupported location scheme %q", u.Scheme)
	}
}

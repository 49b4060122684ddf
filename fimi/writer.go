package fimi

import (
	"context"
	"fmt"

	"github.com/hupe1980/fimgo/blobstore"
	"github.com/hupe1980/fimgo/sink"
)

// CreateBlob returns a collector writing patterns to a blob, compressed
// according to its name. The blob is published when the collector is
// closed and discarded when it is aborted.
func CreateBlob(ctx context.Context, store blobstore.BlobStore, name string) (*sink.Writer, error) {
	blob, err := store.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fimi: create %s: %w", name, err)
	}

	w, err := NewWriter(blob, CompressionFor(name))
	if err != nil {
		_ = blob.Abort()
		return nil, fmt.Errorf("fimi: %s: %w", name, err)
	}

	return sink.NewWriter(w), nil
}

package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrAborted is the error an aborted upload fails with.
var ErrAborted = errors.New("blobstore: write aborted")

// BlobStore reads and writes whole blobs.
type BlobStore interface {
	// Open opens a blob for sequential reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create starts writing a blob. Nothing is visible under name before
	// the returned blob is closed.
	Create(ctx context.Context, name string) (WritableBlob, error)
}

// Blob is a read-only stream over a data blob.
type Blob interface {
	io.Reader
	io.Closer
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a blob being written.
type WritableBlob interface {
	io.Writer
	// Close publishes the blob.
	io.Closer
	// Abort discards everything written. It is a no-op after Close.
	Abort() error
}

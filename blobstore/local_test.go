package blobstore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()

	blobName := filepath.Join("out", "patterns.txt")
	data := []byte("3\t1 2\n2\t1\n")

	w, err := store.Create(ctx, blobName)
	require.NoError(t, err)

	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	// not visible before Close
	_, err = store.Open(ctx, blobName)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.Close())
	require.Error(t, w.Close())
	require.NoError(t, w.Abort())

	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	got, err := io.ReadAll(blob)
	require.NoError(t, err)
	require.Equal(t, data, got)

	entries, err := os.ReadDir(filepath.Join(tmpDir, "out"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestLocalBlobStore_Abort(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	w, err := store.Create(ctx, "partial.txt")
	require.NoError(t, err)

	_, err = w.Write([]byte("half a line"))
	require.NoError(t, err)
	require.NoError(t, w.Abort())

	_, err = store.Open(ctx, "partial.txt")
	assert.True(t, errors.Is(err, ErrNotFound))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalBlobStore_Overwrite(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, content := range []string{"first", "second"} {
		w, err := store.Create(ctx, "blob")
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}

	b, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	defer b.Close()

	got, err := io.ReadAll(b)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	w, err := store.Create(ctx, "a")
	require.NoError(t, err)
	_, err = w.Write([]byte("abc"))
	require.NoError(t, err)

	_, ok := store.Get("a")
	assert.False(t, ok)

	require.NoError(t, w.Close())

	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))

	aborted, err := store.Create(ctx, "b")
	require.NoError(t, err)
	_, err = aborted.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, aborted.Abort())
	require.NoError(t, aborted.Close())

	_, ok = store.Get("b")
	assert.False(t, ok)

	store.Put("c", []byte("hello"))
	b, err := store.Open(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(5), b.Size())
}

package fimi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fimgo/blobstore"
	"github.com/hupe1980/fimgo/model"
)

func collect(t *testing.T, src model.Source) ([]model.Transaction, error) {
	t.Helper()

	var out []model.Transaction
	for tx, err := range src {
		if err != nil {
			return out, err
		}
		out = append(out, tx)
	}
	return out, nil
}

func TestRead(t *testing.T) {
	txs, err := collect(t, Read(strings.NewReader("1 2 3\n\n 4\t5 \n7")))
	require.NoError(t, err)

	assert.Equal(t, []model.Transaction{
		{Items: []int32{1, 2, 3}, Weight: 1},
		{Weight: 1},
		{Items: []int32{4, 5}, Weight: 1},
		{Items: []int32{7}, Weight: 1},
	}, txs)
}

func TestRead_SyntaxErrors(t *testing.T) {
	for _, input := range []string{"1 x 3", "1 -2", "99999999999"} {
		t.Run(input, func(t *testing.T) {
			txs, err := collect(t, Read(strings.NewReader("0\n"+input+"\n5\n")))
			require.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), "line 2")
			assert.Len(t, txs, 1)
		})
	}
}

func TestRead_StopsEarly(t *testing.T) {
	n := 0
	for range Read(strings.NewReader("1\n2\n3\n")) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestCompressionFor(t *testing.T) {
	tests := map[string]Compression{
		"retail.dat":      CompressionNone,
		"retail.dat.zst":  CompressionZSTD,
		"a/b/c.ZSTD":      CompressionZSTD,
		"patterns.lz4":    CompressionLZ4,
		"patterns.tar.gz": CompressionNone,
	}
	for name, want := range tests {
		assert.Equal(t, want, CompressionFor(name), name)
	}
	assert.Equal(t, "zstd", CompressionZSTD.String())
	assert.Equal(t, "lz4", CompressionLZ4.String())
	assert.Equal(t, "none", CompressionNone.String())
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func TestCompression_RoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("1 2 3 4 5\n6 7 8\n"), 1000)

	for _, c := range []Compression{CompressionNone, CompressionZSTD, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(nopWriteCloser{&buf}, c)
			require.NoError(t, err)
			_, err = w.Write(data)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if c != CompressionNone {
				assert.Less(t, buf.Len(), len(data))
			}

			r, err := NewReader(&buf, c)
			require.NoError(t, err)
			defer r.Close()

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestBlob_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{"out.txt", "out.txt.zst", "out.txt.lz4"} {
		t.Run(name, func(t *testing.T) {
			store := blobstore.NewMemoryStore()

			w, err := CreateBlob(ctx, store, name)
			require.NoError(t, err)
			w.Collect(3, []int32{1, 2})
			w.Collect(2, []int32{4})

			_, ok := store.Get(name)
			require.False(t, ok, "visible before close")

			n, err := w.Close()
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			blob, err := store.Open(ctx, name)
			require.NoError(t, err)
			r, err := NewReader(blob, CompressionFor(name))
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "3\t1 2\n2\t4\n", string(got))
		})
	}
}

func TestBlob_Abort(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	w, err := CreateBlob(ctx, store, "out.zst")
	require.NoError(t, err)
	w.Collect(1, []int32{1})
	require.NoError(t, w.Abort())

	_, ok := store.Get("out.zst")
	assert.False(t, ok)
}

func TestReadBlob(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	var buf bytes.Buffer
	w, err := NewWriter(nopWriteCloser{&buf}, CompressionLZ4)
	require.NoError(t, err)
	_, err = io.WriteString(w, "1 2\n2 3\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	store.Put("in.dat.lz4", buf.Bytes())

	txs, err := collect(t, ReadBlob(ctx, store, "in.dat.lz4"))
	require.NoError(t, err)
	assert.Equal(t, []model.Transaction{
		{Items: []int32{1, 2}, Weight: 1},
		{Items: []int32{2, 3}, Weight: 1},
	}, txs)

	_, err = collect(t, ReadBlob(ctx, store, "missing.dat"))
	assert.True(t, errors.Is(err, blobstore.ErrNotFound))
}

package fimi

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hupe1980/fimgo/blobstore"
	"github.com/hupe1980/fimgo/model"
)

// ErrSyntax is returned for a token that is not a non-negative item id.
var ErrSyntax = errors.New("fimi: syntax error")

// maxLine bounds the length of one transaction line.
const maxLine = 64 << 20

// Read returns the transactions of r, one per line. Reading stops at the
// first error, which is yielded with its line number.
func Read(r io.Reader) model.Source {
	return func(yield func(model.Transaction, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLine)

		line := 0
		for sc.Scan() {
			line++

			items, err := parseLine(nil, sc.Bytes())
			if err != nil {
				yield(model.Transaction{}, fmt.Errorf("line %d: %w", line, err))
				return
			}
			if !yield(model.Transaction{Items: items, Weight: 1}, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(model.Transaction{}, fmt.Errorf("line %d: %w", line+1, err))
		}
	}
}

func parseLine(dst []int32, line []byte) ([]int32, error) {
	for _, tok := range bytes.Fields(line) {
		v, err := strconv.ParseInt(string(tok), 10, 32)
		if err != nil || v < 0 {
			return dst, fmt.Errorf("%w: item %q", ErrSyntax, tok)
		}
		dst = append(dst, int32(v))
	}
	return dst, nil
}

// ReadBlob returns the transactions of a blob, decompressed according to
// its name. The blob is opened when the sequence is ranged over and closed
// when it ends.
func ReadBlob(ctx context.Context, store blobstore.BlobStore, name string) model.Source {
	return func(yield func(model.Transaction, error) bool) {
		blob, err := store.Open(ctx, name)
		if err != nil {
			yield(model.Transaction{}, fmt.Errorf("fimi: open %s: %w", name, err))
			return
		}
		defer blob.Close()

		r, err := NewReader(blob, CompressionFor(name))
		if err != nil {
			yield(model.Transaction{}, fmt.Errorf("fimi: %s: %w", name, err))
			return
		}
		defer r.Close()

		for tx, err := range Read(r) {
			if err != nil {
				err = fmt.Errorf("fimi: %s: %w", name, err)
			}
			if !yield(tx, err) || err != nil {
				return
			}
		}
	}
}

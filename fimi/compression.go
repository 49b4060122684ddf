package fimi

import (
	"errors"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is a stream compression format.
type Compression uint8

const (
	// CompressionNone indicates no compression.
	CompressionNone Compression = iota
	// CompressionZSTD indicates a zstd stream.
	CompressionZSTD
	// CompressionLZ4 indicates an lz4 frame stream.
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CompressionFor picks the compression from name's extension.
func CompressionFor(name string) Compression {
	switch strings.ToLower(path.Ext(name)) {
	case ".zst", ".zstd":
		return CompressionZSTD
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// NewReader returns a reader decompressing r. Closing it releases the
// decoder, not r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionZSTD:
		dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return io.NopCloser(r), nil
	}
}

// compressWriter compresses into a destination closed or aborted with it.
type compressWriter struct {
	enc io.WriteCloser
	dst io.WriteCloser
}

// NewWriter returns a writer compressing into w. Close flushes the
// compressed stream, then closes w. When w can abort, so can the result.
func NewWriter(w io.WriteCloser, c Compression) (io.WriteCloser, error) {
	var enc io.WriteCloser
	switch c {
	case CompressionZSTD:
		e, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, err
		}
		enc = e
	case CompressionLZ4:
		enc = lz4.NewWriter(w)
	default:
		return w, nil
	}
	return &compressWriter{enc: enc, dst: w}, nil
}

func (w *compressWriter) Write(p []byte) (int, error) {
	return w.enc.Write(p)
}

func (w *compressWriter) Close() error {
	if err := w.enc.Close(); err != nil {
		return errors.Join(err, abort(w.dst))
	}
	return w.dst.Close()
}

func (w *compressWriter) Abort() error {
	err := abort(w.dst)
	// releases the encoder; its trailer goes nowhere
	_ = w.enc.Close()
	return err
}

func abort(w io.WriteCloser) error {
	if a, ok := w.(interface{ Abort() error }); ok {
		return a.Abort()
	}
	return w.Close()
}

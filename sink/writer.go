package sink

import (
	"bufio"
	"io"
	"strconv"
	"sync"
)

// Writer writes one line per pattern: the support, a tab, then the items
// separated by spaces. Write errors are sticky and reported by Close.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	bw     *bufio.Writer
	line   []byte
	n      int64
	err    error
	closed bool
}

// NewWriter returns a Writer on w. If w is an io.Closer it is closed by
// Close; if it is an Aborter it is aborted by Abort.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, bw: bufio.NewWriterSize(w, 64*1024)}
}

func (w *Writer) Collect(support int, pattern []int32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil || w.closed {
		return
	}

	w.line = strconv.AppendInt(w.line[:0], int64(support), 10)
	w.line = append(w.line, '\t')
	for i, it := range pattern {
		if i > 0 {
			w.line = append(w.line, ' ')
		}
		w.line = strconv.AppendInt(w.line, int64(it), 10)
	}
	w.line = append(w.line, '\n')

	if _, err := w.bw.Write(w.line); err != nil {
		w.err = err
		return
	}
	w.n++
}

// Close flushes buffered lines and closes the underlying writer.
func (w *Writer) Close() (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return w.n, ErrClosed
	}
	w.closed = true

	if w.err == nil {
		w.err = w.bw.Flush()
	}
	if c, ok := w.w.(io.Closer); ok {
		if err := c.Close(); err != nil && w.err == nil {
			w.err = err
		}
	}

	return w.n, w.err
}

// Abort drops buffered lines and aborts the underlying writer when it
// supports it.
func (w *Writer) Abort() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	w.bw.Reset(io.Discard)

	switch u := w.w.(type) {
	case Aborter:
		return u.Abort()
	case io.Closer:
		return u.Close()
	}
	return nil
}

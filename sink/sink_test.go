package sink

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fimgo/model"
)

func TestCount(t *testing.T) {
	c := NewCount()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Collect(1, []int32{1})
			}
		}()
	}
	wg.Wait()

	n, err := c.Close()
	require.NoError(t, err)
	assert.Equal(t, int64(800), n)
}

func TestSlice_CopiesPatterns(t *testing.T) {
	s := NewSlice()
	buf := []int32{3, 1}
	s.Collect(2, buf)
	buf[0] = 9

	n, err := s.Close()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, []model.Pattern{{Support: 2, Items: []int32{3, 1}}}, s.Patterns())
}

func TestSorted(t *testing.T) {
	s := NewSlice()
	sorted := NewSorted(s)

	pattern := []int32{5, 2, 7}
	sorted.Collect(4, pattern)

	assert.Equal(t, []int32{5, 2, 7}, pattern)
	assert.Equal(t, []int32{2, 5, 7}, s.Patterns()[0].Items)

	n, err := sorted.Close()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

type closeBuffer struct {
	bytes.Buffer
	closed  bool
	aborted bool
}

func (b *closeBuffer) Close() error { b.closed = true; return nil }
func (b *closeBuffer) Abort() error { b.aborted = true; return nil }

func TestWriter(t *testing.T) {
	var buf closeBuffer
	w := NewWriter(&buf)

	w.Collect(4, nil)
	w.Collect(2, []int32{1, 3})

	n, err := w.Close()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "4\t\n2\t1 3\n", buf.String())
	assert.True(t, buf.closed)

	_, err = w.Close()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWriter_Abort(t *testing.T) {
	var buf closeBuffer
	w := NewSorted(NewWriter(&buf))

	w.Collect(1, []int32{2})
	require.NoError(t, Abort(w))

	assert.True(t, buf.aborted)
	assert.False(t, buf.closed)
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_StickyError(t *testing.T) {
	w := NewWriter(failingWriter{})

	// small lines sit in the buffer until the flush
	w.Collect(1, []int32{1})
	_, err := w.Close()
	assert.EqualError(t, err, "disk full")
}

func TestAbort_FallsBackToClose(t *testing.T) {
	c := NewCount()
	assert.NoError(t, Abort(c))
}

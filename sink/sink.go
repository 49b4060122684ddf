package sink

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/fimgo/model"
)

// ErrClosed is returned when a collector is closed twice.
var ErrClosed = errors.New("sink: collector closed")

// Collector receives patterns. Implementations must be safe for concurrent
// use. Collect must not retain pattern: the caller may reuse it.
type Collector interface {
	Collect(support int, pattern []int32)
	Close() (int64, error)
}

// Aborter is implemented by collectors able to discard everything collected
// so far instead of publishing it.
type Aborter interface {
	Abort() error
}

// Abort discards c's output when c supports it and closes it otherwise.
func Abort(c Collector) error {
	if a, ok := c.(Aborter); ok {
		return a.Abort()
	}
	_, err := c.Close()
	return err
}

// Count counts patterns and drops them.
type Count struct {
	n atomic.Int64
}

// NewCount returns a counting collector.
func NewCount() *Count { return &Count{} }

func (c *Count) Collect(int, []int32) { c.n.Add(1) }

// Close returns the number of collected patterns.
func (c *Count) Close() (int64, error) { return c.n.Load(), nil }

// Slice keeps collected patterns in memory.
type Slice struct {
	mu       sync.Mutex
	patterns []model.Pattern
}

// NewSlice returns an in-memory collector.
func NewSlice() *Slice { return &Slice{} }

func (s *Slice) Collect(support int, pattern []int32) {
	p := model.Pattern{Support: support, Items: slices.Clone(pattern)}

	s.mu.Lock()
	s.patterns = append(s.patterns, p)
	s.mu.Unlock()
}

func (s *Slice) Close() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.patterns)), nil
}

// Patterns returns the collected patterns in collection order.
func (s *Slice) Patterns() []model.Pattern {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.patterns)
}

// Sorted sorts the items of every pattern in ascending order before handing
// it to the next collector.
type Sorted struct {
	next Collector
	pool sync.Pool
}

// NewSorted decorates next.
func NewSorted(next Collector) *Sorted {
	return &Sorted{next: next}
}

func (s *Sorted) Collect(support int, pattern []int32) {
	buf, _ := s.pool.Get().(*[]int32)
	if buf == nil {
		buf = new([]int32)
	}
	sorted := append((*buf)[:0], pattern...)
	slices.Sort(sorted)

	s.next.Collect(support, sorted)

	*buf = sorted
	s.pool.Put(buf)
}

func (s *Sorted) Close() (int64, error) { return s.next.Close() }

// Abort aborts the next collector.
func (s *Sorted) Abort() error { return Abort(s.next) }

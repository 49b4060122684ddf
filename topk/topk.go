// Package topk keeps, for every item, the k closed patterns of highest
// support containing it.
//
// The Collector is both a sink.Collector and, through Selector, an
// exploration selector: once an item's list holds k patterns, its k-th
// support is a bound below which no pattern can enter the list, and
// branches that cannot produce a pattern beating the bound of any of their
// items are not explored.
package topk

import (
	"encoding/binary"
	"errors"
	"maps"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/fimgo/model"
	"github.com/hupe1980/fimgo/sink"
)

// ErrInvalidK is returned for k < 1.
var ErrInvalidK = errors.New("topk: k must be positive")

type entry struct {
	support int
	items   []int32
}

// ranked is a support-descending list of at most k entries.
type ranked struct {
	mu      sync.Mutex
	entries []entry
	// bound is the support of the k-th entry, -1 while the list is not full.
	bound atomic.Int64
}

// insert adds e when it beats the k-th entry or a slot is free. Entries of
// equal support keep their arrival order.
func (r *ranked) insert(k int, e entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	if n == k && r.entries[k-1].support >= e.support {
		return
	}

	pos := min(n, k-1)
	for pos > 0 && r.entries[pos-1].support < e.support {
		pos--
	}
	if n < k {
		r.entries = append(r.entries, entry{})
	}
	copy(r.entries[pos+1:], r.entries[pos:len(r.entries)-1])
	r.entries[pos] = e

	if len(r.entries) == k {
		r.bound.Store(int64(r.entries[k-1].support))
	}
}

// Collector implements sink.Collector and filters patterns into per-item
// top-k lists. Patterns reach the next collector only on Close.
type Collector struct {
	k     int
	next  sink.Collector
	lists map[int32]*ranked
}

// New returns a Collector tracking the given items. Patterns containing
// other items are only ranked under the tracked ones.
func New(next sink.Collector, k int, items []int32) (*Collector, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}

	c := &Collector{
		k:     k,
		next:  next,
		lists: make(map[int32]*ranked, len(items)),
	}
	for _, it := range items {
		r := &ranked{entries: make([]entry, 0, k)}
		r.bound.Store(-1)
		c.lists[it] = r
	}

	return c, nil
}

// K returns the number of patterns kept per item.
func (c *Collector) K() int { return c.k }

func (c *Collector) Collect(support int, pattern []int32) {
	e := entry{support: support, items: slices.Clone(pattern)}
	for _, it := range pattern {
		if r, ok := c.lists[it]; ok {
			r.insert(c.k, e)
		}
	}
}

// Bound returns the support of item's k-th pattern, or -1 when fewer than k
// patterns contain it.
func (c *Collector) Bound(item int32) int {
	r, ok := c.lists[item]
	if !ok {
		return -1
	}
	return int(r.bound.Load())
}

// Top returns item's ranked patterns.
func (c *Collector) Top(item int32) []model.Pattern {
	r, ok := c.lists[item]
	if !ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Pattern, len(r.entries))
	for i, e := range r.entries {
		out[i] = model.Pattern{Support: e.support, Items: slices.Clone(e.items)}
	}
	return out
}

// Close hands every distinct ranked pattern to the next collector, items in
// ascending order, then closes it.
func (c *Collector) Close() (int64, error) {
	seen := make(map[uint64][]entry)
	var buf []byte

	for _, it := range slices.Sorted(maps.Keys(c.lists)) {
		r := c.lists[it]
		r.mu.Lock()
		for _, e := range r.entries {
			buf = binary.AppendUvarint(buf[:0], uint64(e.support))
			for _, x := range e.items {
				buf = binary.LittleEndian.AppendUint32(buf, uint32(x))
			}
			h := xxhash.Sum64(buf)

			if slices.ContainsFunc(seen[h], e.equal) {
				continue
			}
			seen[h] = append(seen[h], e)
			c.next.Collect(e.support, e.items)
		}
		r.mu.Unlock()
	}

	return c.next.Close()
}

// Abort aborts the next collector.
func (c *Collector) Abort() error { return sink.Abort(c.next) }

func (e entry) equal(o entry) bool {
	return e.support == o.support && slices.Equal(e.items, o.items)
}

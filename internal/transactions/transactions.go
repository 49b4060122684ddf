package transactions

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/fimgo/internal/conv"
)

var (
	// ErrOrder is returned when a transaction's items are not strictly ascending.
	ErrOrder = errors.New("transactions: items must be strictly ascending")

	// ErrWeight is returned for a transaction weight below one.
	ErrWeight = errors.New("transactions: weight must be positive")
)

// List is a concatenated transaction store backed by W words.
type List[W conv.Word] struct {
	items   []W
	start   []int
	end     []int
	weights []int
	limit   int
}

// New allocates a store sized for the given number of transactions and total
// item occurrences.
func New[W conv.Word](transactions, occurrences int) *List[W] {
	return &List[W]{
		items:   make([]W, 0, occurrences),
		start:   make([]int, 0, transactions),
		end:     make([]int, 0, transactions),
		weights: make([]int, 0, transactions),
		limit:   conv.MaxOf[W](),
	}
}

// Append stores a transaction and returns its id.
// Ids are assigned densely in insertion order.
func (l *List[W]) Append(weight int, items []int32) (int, error) {
	if weight < 1 {
		return 0, fmt.Errorf("%w: %d", ErrWeight, weight)
	}

	from := len(l.items)
	for i, it := range items {
		if i > 0 && items[i-1] >= it {
			l.items = l.items[:from]
			return 0, fmt.Errorf("%w: %d after %d", ErrOrder, it, items[i-1])
		}
		w, err := conv.Narrow[W](int(it), l.limit)
		if err != nil {
			l.items = l.items[:from]
			return 0, fmt.Errorf("transactions: %w", err)
		}
		l.items = append(l.items, w)
	}

	tid := len(l.weights)
	l.start = append(l.start, from)
	l.end = append(l.end, len(l.items))
	l.weights = append(l.weights, weight)

	return tid, nil
}

// Len returns the number of stored transactions, including merged ones.
func (l *List[W]) Len() int { return len(l.weights) }

// Get returns the items of transaction tid. The slice aliases the store.
func (l *List[W]) Get(tid int) []W { return l.items[l.start[tid]:l.end[tid]] }

// Weight returns the weight of transaction tid, zero once it was merged away.
func (l *List[W]) Weight(tid int) int { return l.weights[tid] }

// All iterates over transactions with a non-zero weight.
func (l *List[W]) All() iter.Seq2[int, []W] {
	return func(yield func(int, []W) bool) {
		for tid, w := range l.weights {
			if w == 0 {
				continue
			}
			if !yield(tid, l.Get(tid)) {
				return
			}
		}
	}
}

// Compress merges transactions having the same items below core.
//
// The first transaction of every group keeps the summed weight and only the
// items at or above core that all members share; the others drop to weight
// zero. Counts of items below core are unchanged by the merge.
func (l *List[W]) Compress(core int) {
	order := make([]int, 0, len(l.weights))
	for tid, w := range l.weights {
		if w > 0 {
			order = append(order, tid)
		}
	}
	if len(order) < 2 {
		return
	}

	c := W(min(core, l.limit))
	prefix := func(items []W) int {
		if core > l.limit {
			return len(items)
		}
		n, _ := slices.BinarySearch(items, c)
		return n
	}

	slices.SortStableFunc(order, func(a, b int) int {
		ia, ib := l.Get(a), l.Get(b)
		return slices.Compare(ia[:prefix(ia)], ib[:prefix(ib)])
	})

	head := order[0]
	headPrefix := prefix(l.Get(head))
	for _, tid := range order[1:] {
		items := l.Get(tid)
		p := prefix(items)
		if !slices.Equal(l.Get(head)[:headPrefix], items[:p]) {
			head, headPrefix = tid, p
			continue
		}

		l.weights[head] += l.weights[tid]
		l.weights[tid] = 0
		l.intersectSuffix(head, headPrefix, items[p:])
	}
}

// intersectSuffix keeps in tid only the items past its prefix that also
// appear in other.
func (l *List[W]) intersectSuffix(tid, prefix int, other []W) {
	suffix := l.items[l.start[tid]+prefix : l.end[tid]]

	n, j := 0, 0
	for _, it := range suffix {
		for j < len(other) && other[j] < it {
			j++
		}
		if j < len(other) && other[j] == it {
			suffix[n] = it
			n++
			j++
		}
	}

	l.end[tid] = l.start[tid] + prefix + n
}

// Clone returns a deep copy of the store.
func (l *List[W]) Clone() *List[W] {
	return &List[W]{
		items:   slices.Clone(l.items),
		start:   slices.Clone(l.start),
		end:     slices.Clone(l.end),
		weights: slices.Clone(l.weights),
		limit:   l.limit,
	}
}

// Bytes returns the size of the item array in bytes.
func (l *List[W]) Bytes() int {
	var w W
	switch any(w).(type) {
	case uint8:
		return len(l.items)
	case uint16:
		return 2 * len(l.items)
	default:
		return 4 * len(l.items)
	}
}

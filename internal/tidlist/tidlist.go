package tidlist

import (
	"errors"
	"fmt"
	"iter"

	"github.com/hupe1980/fimgo/internal/conv"
)

// ErrOrder is returned when a transaction id is not strictly greater than the
// previous one appended to the same list.
var ErrOrder = errors.New("tidlist: transaction ids must be strictly increasing")

// List is a concatenated tid-list store backed by W words.
type List[W conv.Word] struct {
	tids  []W
	start []int
	end   []int
	limit int
}

// New allocates a store with room for lengths[i] transaction ids for item i.
func New[W conv.Word](lengths []int) *List[W] {
	l := &List[W]{
		start: make([]int, len(lengths)),
		end:   make([]int, len(lengths)),
		limit: conv.MaxOf[W](),
	}

	total := 0
	for i, n := range lengths {
		l.start[i] = total
		l.end[i] = total
		total += n
	}
	l.tids = make([]W, total)

	return l
}

// Items returns the number of item slots.
func (l *List[W]) Items() int { return len(l.start) }

// Len returns the number of transaction ids recorded for item.
func (l *List[W]) Len(item int) int { return l.end[item] - l.start[item] }

// Cap returns the number of transaction ids item was sized for.
func (l *List[W]) Cap(item int) int {
	if item+1 < len(l.start) {
		return l.start[item+1] - l.start[item]
	}
	return len(l.tids) - l.start[item]
}

// Add appends tid to item's list.
func (l *List[W]) Add(item, tid int) error {
	w, err := conv.Narrow[W](tid, l.limit)
	if err != nil {
		return fmt.Errorf("tidlist: item %d: %w", item, err)
	}

	pos := l.end[item]
	if pos > l.start[item] && int(l.tids[pos-1]) >= tid {
		return fmt.Errorf("%w: item %d got %d after %d", ErrOrder, item, tid, l.tids[pos-1])
	}
	if l.Len(item) == l.Cap(item) {
		return fmt.Errorf("tidlist: item %d: %w: list is full (%d)", item, conv.ErrOverflow, l.Cap(item))
	}

	l.tids[pos] = w
	l.end[item] = pos + 1

	return nil
}

// Get returns item's tids. The slice aliases the store and must not be modified.
func (l *List[W]) Get(item int) []W {
	return l.tids[l.start[item]:l.end[item]]
}

// All iterates over item's tids in insertion order.
func (l *List[W]) All(item int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, t := range l.Get(item) {
			if !yield(int(t)) {
				return
			}
		}
	}
}

// Included reports whether every tid of a also appears in b.
func (l *List[W]) Included(a, b int) bool {
	return Included(l.Get(a), l.Get(b))
}

// Included reports whether the ascending list a is a subset of the ascending
// list b, walking both in lock-step.
func Included[W conv.Word](a, b []W) bool {
	if len(a) > len(b) {
		return false
	}

	j := 0
	for _, ta := range a {
		for j < len(b) && b[j] < ta {
			j++
		}
		if j == len(b) || b[j] != ta {
			return false
		}
		j++
	}

	return true
}

// Clone returns a deep copy of the store.
func (l *List[W]) Clone() *List[W] {
	return &List[W]{
		tids:  append([]W(nil), l.tids...),
		start: append([]int(nil), l.start...),
		end:   append([]int(nil), l.end...),
		limit: l.limit,
	}
}

// Bytes returns the size of the id array in bytes.
func (l *List[W]) Bytes() int {
	var w W
	switch any(w).(type) {
	case uint8:
		return len(l.tids)
	case uint16:
		return 2 * len(l.tids)
	default:
		return 4 * len(l.tids)
	}
}

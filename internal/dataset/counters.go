package dataset

import (
	"fmt"
	"iter"
)

// WrongFirstParent reports that Extension cannot be the first parent of the
// pattern it would generate because FirstParent, a greater item, belongs to
// the same closure.
type WrongFirstParent struct {
	Extension   int
	FirstParent int
}

func (e *WrongFirstParent) Error() string {
	return fmt.Sprintf("dataset: %d is not a first parent, closure contains %d", e.Extension, e.FirstParent)
}

// Counters is the read-only summary of one dataset.
type Counters struct {
	// MinSupport is the absolute support threshold.
	MinSupport int
	// Support is the summed weight of the dataset's transactions, i.e. the
	// support of the pattern it was projected on.
	Support int
	// Transactions is the number of stored transactions, merged ones included.
	Transactions int
	// Supports holds the support of every local item.
	Supports []int
	// MaxCandidate bounds the candidate extensions: local ids below it.
	MaxCandidate int
	// Closure lists the original ids added to the pattern by this dataset,
	// apart from the extension itself.
	Closure []int32
	// Reverse maps local ids to original ids.
	Reverse []int32
	// Rebase maps original ids to local ids. Only set on the root.
	Rebase map[int32]int32
}

// NbFrequents returns the number of local items.
func (c *Counters) NbFrequents() int { return len(c.Supports) }

// MaxFrequent returns the greatest local id, or -1.
func (c *Counters) MaxFrequent() int { return len(c.Supports) - 1 }

// Original returns the original id of a local item.
func (c *Counters) Original(item int) int32 { return c.Reverse[item] }

// Candidates iterates over candidate extensions in ascending local id order.
func (c *Counters) Candidates() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range c.MaxCandidate {
			if !yield(i) {
				return
			}
		}
	}
}

// SortedFrequents iterates over local items in [from, to), ascending.
func (c *Counters) SortedFrequents(from, to int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := max(from, 0); i < min(to, len(c.Supports)); i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// RebasePattern maps original ids to root local ids. It reports false when
// an item is not frequent.
func (c *Counters) RebasePattern(items []int32) ([]int32, bool) {
	out := make([]int32, len(items))
	for i, it := range items {
		local, ok := c.Rebase[it]
		if !ok {
			return nil, false
		}
		out[i] = local
	}
	return out, true
}

// OriginalPattern maps local ids to original ids.
func (c *Counters) OriginalPattern(items []int32) []int32 {
	out := make([]int32, len(items))
	for i, it := range items {
		out[i] = c.Reverse[it]
	}
	return out
}

// String returns a string representation of the Counters.
func (c *Counters) String() string {
	return fmt.Sprintf("Counters(support=%d, transactions=%d, frequents=%d, candidates=%d, closure=%v)",
		c.Support, c.Transactions, len(c.Supports), c.MaxCandidate, c.Closure)
}

// Package pool provides reusable scratch buffers for dataset projections.
// Uses sync.Pool so concurrent workers project without per-call allocation of
// counting arrays, and bitsets for the per-item frequent/closure flags.
package pool

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

const (
	// DefaultItems is the initial capacity of the per-item arrays.
	DefaultItems = 1024

	// DefaultStaged is the initial capacity of the staged item buffer.
	DefaultStaged = 16 * 1024

	// maxRetainedStaged caps the staged buffer kept across uses.
	maxRetainedStaged = 64 * DefaultStaged
)

// Projection holds the working state of one projection pass.
//
// Supports and Occurrences are indexed by item id of the dataset being
// projected. Staged transactions are stored back to back in Items, the i-th
// one ending at Ends[i] with weight Weights[i].
type Projection struct {
	Supports    []int
	Occurrences []int
	Renaming    []int32

	Items   []int32
	Ends    []int
	Weights []int

	Frequent *bitset.BitSet
	Closure  *bitset.BitSet
}

var projectionPool = sync.Pool{
	New: func() any {
		return &Projection{
			Supports:    make([]int, 0, DefaultItems),
			Occurrences: make([]int, 0, DefaultItems),
			Renaming:    make([]int32, 0, DefaultItems),
			Items:       make([]int32, 0, DefaultStaged),
			Frequent:    bitset.New(DefaultItems),
			Closure:     bitset.New(DefaultItems),
		}
	},
}

// Get retrieves a Projection sized and zeroed for items item ids.
func Get(items int) *Projection {
	p := projectionPool.Get().(*Projection)
	p.Reset(items)
	return p
}

// Put returns a Projection to the pool for reuse.
func Put(p *Projection) {
	if cap(p.Items) > maxRetainedStaged {
		p.Items = make([]int32, 0, DefaultStaged)
	}
	projectionPool.Put(p)
}

// Reset clears the Projection for items item ids.
func (p *Projection) Reset(items int) {
	p.Supports = resize(p.Supports, items)
	p.Occurrences = resize(p.Occurrences, items)
	p.Renaming = resize(p.Renaming, items)
	p.Items = p.Items[:0]
	p.Ends = p.Ends[:0]
	p.Weights = p.Weights[:0]
	p.Frequent.ClearAll()
	p.Closure.ClearAll()
}

// Stage appends one transaction's items to the staging buffer.
func (p *Projection) Stage(weight int, items []int32) {
	p.Items = append(p.Items, items...)
	p.Ends = append(p.Ends, len(p.Items))
	p.Weights = append(p.Weights, weight)
}

// Staged returns the number of staged transactions.
func (p *Projection) Staged() int { return len(p.Ends) }

// Transaction returns the i-th staged transaction.
func (p *Projection) Transaction(i int) ([]int32, int) {
	from := 0
	if i > 0 {
		from = p.Ends[i-1]
	}
	return p.Items[from:p.Ends[i]], p.Weights[i]
}

func resize[T int | int32](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	s = s[:n]
	clear(s)
	return s
}

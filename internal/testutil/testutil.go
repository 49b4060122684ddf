package testutil

import (
	"math/rand"
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/fimgo/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Transactions generates n transactions over item ids [0, items). Each item
// is drawn independently with a probability decreasing linearly from density
// for item 0 to density/items for the last one, so supports are skewed.
// Weights are mostly one, sometimes two or three.
func (r *RNG) Transactions(n, items int, density float64) []model.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	txs := make([]model.Transaction, n)
	for i := range txs {
		var row []int32
		for it := range items {
			p := density * float64(items-it) / float64(items)
			if r.rand.Float64() < p {
				row = append(row, int32(it))
			}
		}
		r.rand.Shuffle(len(row), func(a, b int) { row[a], row[b] = row[b], row[a] })

		w := 1
		if r.rand.Intn(8) == 0 {
			w += 1 + r.rand.Intn(2)
		}
		txs[i] = model.Transaction{Items: row, Weight: w}
	}

	return txs
}

// Oracle answers support queries by intersecting per-item tid bitmaps.
type Oracle struct {
	items   map[int32]*roaring.Bitmap
	weights []int
	all     *roaring.Bitmap
}

// NewOracle indexes txs. Duplicate items within a transaction count once and
// a zero weight counts as one.
func NewOracle(txs []model.Transaction) *Oracle {
	o := &Oracle{
		items:   make(map[int32]*roaring.Bitmap),
		weights: make([]int, len(txs)),
		all:     roaring.New(),
	}

	for tid, tx := range txs {
		w := tx.Weight
		if w == 0 {
			w = 1
		}
		o.weights[tid] = w
		o.all.Add(uint32(tid))
		for _, it := range tx.Items {
			bm, ok := o.items[it]
			if !ok {
				bm = roaring.New()
				o.items[it] = bm
			}
			bm.Add(uint32(tid))
		}
	}

	return o
}

// Tids returns the transactions containing every item of pattern.
func (o *Oracle) Tids(pattern []int32) *roaring.Bitmap {
	acc := o.all.Clone()
	for _, it := range pattern {
		bm, ok := o.items[it]
		if !ok {
			return roaring.New()
		}
		acc.And(bm)
	}
	return acc
}

// Support returns the weighted support of pattern.
func (o *Oracle) Support(pattern []int32) int {
	return o.weight(o.Tids(pattern))
}

func (o *Oracle) weight(tids *roaring.Bitmap) int {
	s := 0
	it := tids.Iterator()
	for it.HasNext() {
		s += o.weights[it.Next()]
	}
	return s
}

// Closure returns, ascending, the items present in every transaction of tids.
func (o *Oracle) Closure(tids *roaring.Bitmap) []int32 {
	var out []int32
	for it, bm := range o.items {
		if tids.IsEmpty() || bm.Contains(tids.Minimum()) && tids.AndCardinality(bm) == tids.GetCardinality() {
			out = append(out, it)
		}
	}
	slices.Sort(out)
	return out
}

// Closed enumerates every closed itemset reaching minSupport, items ascending,
// sorted with model.Compare.
func (o *Oracle) Closed(minSupport int) []model.Pattern {
	seen := make(map[string]bool)
	var out []model.Pattern

	var visit func(items []int32, tids *roaring.Bitmap)
	visit = func(items []int32, tids *roaring.Bitmap) {
		support := o.weight(tids)
		if support < minSupport {
			return
		}
		key := keyOf(items)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, model.Pattern{Support: support, Items: items})

		for it, bm := range o.items {
			if _, found := slices.BinarySearch(items, it); found {
				continue
			}
			next := roaring.And(tids, bm)
			if next.IsEmpty() {
				continue
			}
			visit(o.Closure(next), next)
		}
	}
	visit(o.Closure(o.all), o.all)

	slices.SortFunc(out, model.Compare)
	return out
}

// TopKSupports returns, for every item occurring in closed, the supports of
// its k best patterns in descending order.
func (o *Oracle) TopKSupports(closed []model.Pattern, k int) map[int32][]int {
	per := make(map[int32][]int)
	for _, p := range closed {
		for _, it := range p.Items {
			per[it] = append(per[it], p.Support)
		}
	}
	for it, s := range per {
		slices.SortFunc(s, func(a, b int) int { return b - a })
		per[it] = s[:min(k, len(s))]
	}
	return per
}

// Normalize sorts the items of every pattern, then the patterns.
func Normalize(ps []model.Pattern) []model.Pattern {
	out := make([]model.Pattern, len(ps))
	for i, p := range ps {
		out[i] = p.Sorted()
		if len(out[i].Items) == 0 {
			out[i].Items = nil
		}
	}
	slices.SortFunc(out, model.Compare)
	return out
}

func keyOf(items []int32) string {
	b := make([]byte, 0, 4*len(items))
	for _, it := range items {
		b = append(b, byte(it>>24), byte(it>>16), byte(it>>8), byte(it))
	}
	return string(b)
}

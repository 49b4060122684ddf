package dataset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/fimgo/internal/pool"
	"github.com/hupe1980/fimgo/internal/queue"
	"github.com/hupe1980/fimgo/model"
)

// ErrInvalidTransaction is returned for a transaction with a negative item
// or a negative weight.
var ErrInvalidTransaction = errors.New("dataset: invalid transaction")

// Load reads src once and builds the root dataset.
//
// Items supported by every transaction form the root closure. The other
// items reaching minSupport are renumbered by descending support, ties by
// ascending original id, and all of them are candidates.
func Load(src model.Source, minSupport int) (Dataset, *Counters, error) {
	p := pool.Get(0)
	defer pool.Put(p)

	supports := make(map[int32]int)
	occurrences := make(map[int32]int)
	total := 0

	var row []int32
	n := 0
	for tx, err := range src {
		if err != nil {
			return nil, nil, err
		}
		n++

		w := tx.Weight
		if w == 0 {
			w = 1
		}
		if w < 0 {
			return nil, nil, fmt.Errorf("%w: transaction %d has weight %d", ErrInvalidTransaction, n, w)
		}

		row = append(row[:0], tx.Items...)
		slices.Sort(row)
		row = slices.Compact(row)
		if len(row) > 0 && row[0] < 0 {
			return nil, nil, fmt.Errorf("%w: transaction %d has item %d", ErrInvalidTransaction, n, row[0])
		}

		total += w
		for _, it := range row {
			supports[it] += w
			occurrences[it]++
		}
		p.Stage(w, row)
	}

	c := &Counters{MinSupport: minSupport, Support: total}

	candidates := make([]queue.PriorityQueueItem, 0, len(supports))
	for it, s := range supports {
		switch {
		case s == total:
			c.Closure = append(c.Closure, it)
		case s >= minSupport:
			candidates = append(candidates, queue.PriorityQueueItem{Item: it, Support: s})
		}
	}
	slices.Sort(c.Closure)

	pq := queue.From(candidates)
	c.Rebase = make(map[int32]int32, pq.Len())
	c.Supports = make([]int, 0, pq.Len())
	c.Reverse = make([]int32, 0, pq.Len())
	lengths := make([]int, 0, pq.Len())
	for {
		top, ok := pq.PopItem()
		if !ok {
			break
		}
		c.Rebase[top.Item] = int32(len(c.Reverse))
		c.Reverse = append(c.Reverse, top.Item)
		c.Supports = append(c.Supports, top.Support)
		lengths = append(lengths, occurrences[top.Item])
	}
	c.MaxCandidate = len(c.Reverse)

	rebase(p, c.Rebase)

	ds, err := build(p, nil, lengths)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: loading: %w", err)
	}
	ds.Compress(c.MaxCandidate)
	c.Transactions = ds.Len()

	return ds, c, nil
}

// rebase rewrites staged transactions in place to local ids, -1 for items
// without one, and restores ascending order within each transaction.
func rebase(p *pool.Projection, ids map[int32]int32) {
	for i := range p.Staged() {
		items, _ := p.Transaction(i)
		for j, it := range items {
			local, ok := ids[it]
			if !ok {
				local = -1
			}
			items[j] = local
		}
		slices.Sort(items)
	}
}

package dataset

import (
	"fmt"
	"iter"

	"github.com/hupe1980/fimgo/internal/conv"
	"github.com/hupe1980/fimgo/internal/pool"
	"github.com/hupe1980/fimgo/internal/tidlist"
	"github.com/hupe1980/fimgo/internal/transactions"
)

// Dataset is a set of weighted transactions over local item ids, with one
// tid-list per item.
type Dataset interface {
	// Project restricts the dataset to the transactions containing ext,
	// whose counters are c. It fails with *WrongFirstParent when the
	// closure of ext holds an item greater than ext.
	Project(c *Counters, ext int) (Dataset, *Counters, error)

	// Included reports whether every transaction containing a contains b.
	Included(a, b int) bool

	// Compress merges transactions sharing their items below core.
	Compress(core int)

	// Clone returns an independent deep copy.
	Clone() Dataset

	// Len returns the number of stored transactions, merged ones included.
	Len() int

	// All iterates over the live transactions and their weights.
	All() iter.Seq2[[]int32, int]

	// Support iterates over the ids of the transactions containing item.
	Support(item int) iter.Seq[int]

	// Widths returns the item and tid encodings.
	Widths() (items, tids conv.Width)

	// Bytes returns the memory held by the item and tid arrays.
	Bytes() int
}

type dataset[I, T conv.Word] struct {
	tx   *transactions.List[I]
	tids *tidlist.List[T]
}

func (d *dataset[I, T]) Project(c *Counters, ext int) (Dataset, *Counters, error) {
	n := c.NbFrequents()
	p := pool.Get(n)
	defer pool.Put(p)

	support := 0
	for _, tid := range d.tids.Get(ext) {
		w := d.tx.Weight(int(tid))
		if w == 0 {
			continue
		}
		support += w
		for _, it := range d.tx.Get(int(tid)) {
			p.Supports[it] += w
			p.Occurrences[it]++
			p.Items = append(p.Items, int32(it))
		}
		p.Ends = append(p.Ends, len(p.Items))
		p.Weights = append(p.Weights, w)
	}

	for it := range n {
		switch s := p.Supports[it]; {
		case it == ext:
		case s == support:
			p.Closure.Set(uint(it))
		case s >= c.MinSupport:
			p.Frequent.Set(uint(it))
		}
	}
	if fp, ok := p.Closure.NextSet(uint(ext + 1)); ok {
		return nil, nil, &WrongFirstParent{Extension: ext, FirstParent: int(fp)}
	}

	child := &Counters{
		MinSupport: c.MinSupport,
		Support:    support,
		Supports:   make([]int, 0, p.Frequent.Count()),
		Reverse:    make([]int32, 0, p.Frequent.Count()),
	}
	for i, ok := p.Closure.NextSet(0); ok; i, ok = p.Closure.NextSet(i + 1) {
		child.Closure = append(child.Closure, c.Reverse[i])
	}

	for i := range p.Renaming {
		p.Renaming[i] = -1
	}
	lengths := make([]int, 0, p.Frequent.Count())
	for i, ok := p.Frequent.NextSet(0); ok; i, ok = p.Frequent.NextSet(i + 1) {
		if int(i) < ext {
			child.MaxCandidate++
		}
		p.Renaming[i] = int32(len(child.Reverse))
		child.Reverse = append(child.Reverse, c.Reverse[i])
		child.Supports = append(child.Supports, p.Supports[i])
		lengths = append(lengths, p.Occurrences[i])
	}

	ds, err := build(p, p.Renaming, lengths)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: projecting on %d: %w", ext, err)
	}
	ds.Compress(child.MaxCandidate)
	child.Transactions = ds.Len()

	return ds, child, nil
}

func (d *dataset[I, T]) Included(a, b int) bool {
	return d.tids.Included(a, b)
}

func (d *dataset[I, T]) Compress(core int) {
	d.tx.Compress(core)
}

func (d *dataset[I, T]) Clone() Dataset {
	return &dataset[I, T]{tx: d.tx.Clone(), tids: d.tids.Clone()}
}

func (d *dataset[I, T]) Len() int { return d.tx.Len() }

func (d *dataset[I, T]) All() iter.Seq2[[]int32, int] {
	return func(yield func([]int32, int) bool) {
		for tid, items := range d.tx.All() {
			row := make([]int32, len(items))
			for i, it := range items {
				row[i] = int32(it)
			}
			if !yield(row, d.tx.Weight(tid)) {
				return
			}
		}
	}
}

func (d *dataset[I, T]) Support(item int) iter.Seq[int] {
	return d.tids.All(item)
}

func (d *dataset[I, T]) Widths() (conv.Width, conv.Width) {
	return widthOf[I](), widthOf[T]()
}

func (d *dataset[I, T]) Bytes() int {
	return d.tx.Bytes() + d.tids.Bytes()
}

func widthOf[W conv.Word]() conv.Width {
	switch conv.MaxOf[W]() {
	case conv.Width8.Max():
		return conv.Width8
	case conv.Width16.Max():
		return conv.Width16
	default:
		return conv.Width32
	}
}

// build encodes the staged transactions of p into the narrowest dataset able
// to hold them. Staged item ids go through renaming when it is not nil;
// negative ids are dropped.
func build(p *pool.Projection, renaming []int32, lengths []int) (Dataset, error) {
	itemWidth, err := conv.WidthFor(len(lengths) - 1)
	if err != nil {
		return nil, err
	}
	tidWidth, err := conv.WidthFor(p.Staged() - 1)
	if err != nil {
		return nil, err
	}

	switch itemWidth {
	case conv.Width8:
		return buildTids[uint8](tidWidth, p, renaming, lengths)
	case conv.Width16:
		return buildTids[uint16](tidWidth, p, renaming, lengths)
	default:
		return buildTids[int32](tidWidth, p, renaming, lengths)
	}
}

func buildTids[I conv.Word](w conv.Width, p *pool.Projection, renaming []int32, lengths []int) (Dataset, error) {
	switch w {
	case conv.Width8:
		return fill[I, uint8](p, renaming, lengths)
	case conv.Width16:
		return fill[I, uint16](p, renaming, lengths)
	default:
		return fill[I, int32](p, renaming, lengths)
	}
}

func fill[I, T conv.Word](p *pool.Projection, renaming []int32, lengths []int) (Dataset, error) {
	d := &dataset[I, T]{
		tx:   transactions.New[I](p.Staged(), len(p.Items)),
		tids: tidlist.New[T](lengths),
	}

	row := make([]int32, 0, 64)
	for i := range p.Staged() {
		items, w := p.Transaction(i)

		row = row[:0]
		for _, it := range items {
			if renaming != nil {
				it = renaming[it]
			}
			if it >= 0 {
				row = append(row, it)
			}
		}
		if len(row) == 0 {
			continue
		}

		tid, err := d.tx.Append(w, row)
		if err != nil {
			return nil, err
		}
		for _, it := range row {
			if err := d.tids.Add(int(it), tid); err != nil {
				return nil, err
			}
		}
	}

	return d, nil
}

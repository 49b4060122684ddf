package model

import (
	"fmt"
	"iter"
	"slices"
)

// Transaction is one input record.
type Transaction struct {
	// Items are original item ids. Order is irrelevant and duplicates are
	// collapsed on load.
	Items []int32
	// Weight is the number of identical records this transaction stands for.
	// Zero is read as one.
	Weight int
}

// NewTransaction returns a transaction of weight one.
func NewTransaction(items ...int32) Transaction {
	return Transaction{Items: items, Weight: 1}
}

// WithWeight returns a copy of t with the given weight.
func (t Transaction) WithWeight(w int) Transaction {
	t.Weight = w
	return t
}

// Source produces transactions once. Iteration stops at the first error.
type Source = iter.Seq2[Transaction, error]

// FromSlice returns a Source over in-memory transactions.
func FromSlice(txs []Transaction) Source {
	return func(yield func(Transaction, error) bool) {
		for _, t := range txs {
			if !yield(t, nil) {
				return
			}
		}
	}
}

// Pattern is a closed itemset in original item ids.
type Pattern struct {
	Support int
	Items   []int32
}

// Sorted returns a copy of p with items in ascending order.
func (p Pattern) Sorted() Pattern {
	items := slices.Clone(p.Items)
	slices.Sort(items)
	return Pattern{Support: p.Support, Items: items}
}

// String returns a string representation of the Pattern.
func (p Pattern) String() string {
	return fmt.Sprintf("%v:%d", p.Items, p.Support)
}

// Compare orders patterns by items, then by support. Both must be sorted.
func Compare(a, b Pattern) int {
	if c := slices.Compare(a.Items, b.Items); c != 0 {
		return c
	}
	return a.Support - b.Support
}

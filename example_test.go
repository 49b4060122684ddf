package fimgo_test

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/hupe1980/fimgo"
	"github.com/hupe1980/fimgo/fimi"
	"github.com/hupe1980/fimgo/model"
	"github.com/hupe1980/fimgo/sink"
)

// Example demonstrates mining the closed itemsets of a small dataset.
func Example() {
	m, err := fimgo.New(2, fimgo.WithWorkers(1), fimgo.WithSortedItems())
	if err != nil {
		log.Fatal(err)
	}

	out := sink.NewSlice()
	src := fimi.Read(strings.NewReader("1 2 3\n1 2\n1 3\n2 3\n"))
	if _, err := m.Mine(context.Background(), src, out); err != nil {
		log.Fatal(err)
	}

	patterns := out.Patterns()
	slices.SortFunc(patterns, model.Compare)
	for _, p := range patterns {
		fmt.Println(p)
	}
	// Output:
	// []:4
	// [1]:3
	// [1 2]:2
	// [1 3]:2
	// [2]:3
	// [2 3]:2
	// [3]:3
}

// Example_topK demonstrates keeping the single best pattern of every item.
func Example_topK() {
	m, err := fimgo.New(2, fimgo.WithTopK(1))
	if err != nil {
		log.Fatal(err)
	}

	out := sink.NewSlice()
	res, err := m.Mine(context.Background(), model.FromSlice([]model.Transaction{
		model.NewTransaction(1, 2, 3),
		model.NewTransaction(1, 2),
		model.NewTransaction(1, 3),
		model.NewTransaction(2, 3),
	}), out)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Patterns, "patterns")
	// Output: 3 patterns
}

// Package fimgo mines closed frequent itemsets from transaction datasets.
//
// A pattern is closed when no item can be added to it without lowering its
// support, the summed weight of the transactions containing it. fimgo
// enumerates every closed pattern reaching an absolute support threshold
// exactly once, depth-first, with the LCM prefix-preserving closure
// extension: each pattern is reached only from its first parent, so no
// duplicate check against previous output is needed.
//
// # Quick Start
//
//	m, _ := fimgo.New(2)
//	out := sink.NewSlice()
//	res, err := m.Mine(ctx, model.FromSlice([]model.Transaction{
//	    model.NewTransaction(1, 2, 3),
//	    model.NewTransaction(1, 2),
//	    model.NewTransaction(1, 3),
//	    model.NewTransaction(2, 3),
//	}), out)
//	for _, p := range out.Patterns() {
//	    fmt.Println(p) // [1 2]:2 ...
//	}
//
// # Top-k per item
//
// WithTopK(k) keeps, for every frequent item, only the k closed patterns of
// highest support containing it. The ranked lists double as a pruning
// bound: branches that cannot produce a pattern entering any list are cut.
//
//	m, _ := fimgo.New(10, fimgo.WithTopK(5))
//
// # Parallelism
//
// WithWorkers(n) explores the tree with n workers, each owning a stack of
// open steps. An idle worker steals the next child of the oldest open step
// of another worker. WithBreadth expands root extensions up front to give
// every worker an initial share.
//
// # Output
//
// Patterns go to a sink.Collector. Collectors writing files or objects
// (sink.Writer over a blob, sink/bolt) publish their output on Close and
// discard it when the run fails.
//
// # Input
//
// A model.Source is a single-use sequence of transactions. The fimi package
// reads the FIMI text format ("1 2 3" per line) from local files or object
// stores, optionally zstd or lz4 compressed.
package fimgo

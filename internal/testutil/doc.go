// Package testutil provides testing utilities for fimgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded random transaction databases and a brute-force closed
// itemset oracle to check miners against.
//
// # Random Transactions
//
//	rng := testutil.NewRNG(seed)
//	txs := rng.Transactions(200, 12, 0.4)
//
// # Ground Truth
//
//	oracle := testutil.NewOracle(txs)
//	want := oracle.Closed(minSupport)
//	top := oracle.TopKSupports(want, k)
package testutil

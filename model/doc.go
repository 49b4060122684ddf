// Package model defines core types used throughout fimgo.
//
// # Data Types
//
//   - Transaction: a set of non-negative item ids with a weight (how many
//     identical records it stands for)
//   - Source: a lazy, finite, non-restartable sequence of transactions
//   - Pattern: a closed itemset in original item ids, with its support
//
// # Sources
//
// Any iter.Seq2[Transaction, error] is a Source. Use FromSlice for in-memory
// data:
//
//	src := model.FromSlice([]model.Transaction{
//	    model.NewTransaction(1, 2, 3),
//	    model.NewTransaction(1, 2).WithWeight(4),
//	})
package model

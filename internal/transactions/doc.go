// Package transactions stores the weighted transactions of a dataset in one
// concatenated item array.
//
// Items inside a transaction are kept in ascending order. A transaction's
// weight counts how many identical input records it stands for; Compress
// merges transactions that agree on their candidate prefix and leaves the
// absorbed ones behind with weight zero, so transaction ids stay stable for
// the tid-lists that reference them.
package transactions

// Package dataset couples a transaction store with its tid-lists and
// implements loading, projection and the counters computed along the way.
//
// Item ids are local to each dataset: the root renumbers frequent items by
// descending support (ties by ascending original id), and every projection
// compacts the ids that stay frequent into a dense range, preserving their
// order. Counters.Reverse maps local ids back to original ids.
//
// Each dataset is a dataset[I, T] for the narrowest item word I and tid word
// T able to hold its ids. The nine instantiations sit behind the Dataset
// interface; the per-element loops are compiled once per width pair.
package dataset

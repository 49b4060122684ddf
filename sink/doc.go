// Package sink defines where discovered patterns go.
//
// A Collector receives every surfaced pattern through Collect, possibly from
// several goroutines at once, and is finalized by Close, which reports how
// many patterns were surfaced downstream. Collectors that produce output
// which must not survive a failed run also implement Aborter.
//
// # Stock collectors
//
//   - Count: counts patterns and drops them (benchmark runs)
//   - Slice: keeps patterns in memory
//   - Sorted: sorts each pattern's items before delegating
//   - Writer: writes "support<TAB>item item ..." lines to an io.Writer
//
// The bolt sub-package stores patterns in a bbolt database.
package sink

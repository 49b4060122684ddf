package fimgo

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/hupe1980/fimgo/internal/scheduler"
)

type options struct {
	workers          int
	k                int
	topK             bool
	breadth          int
	seeded           bool
	starters         []int32
	groups           int
	group            int
	sortedItems      bool
	progressInterval time.Duration
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Miner.
//
// Options are validated by New, so an invalid value surfaces there and not
// in the middle of a run.
type Option func(*options)

// WithWorkers sets the number of exploration workers.
//
// The default is runtime.GOMAXPROCS(0). A single worker explores the tree
// by plain depth-first recursion, without any work-stealing machinery.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithTopK switches the miner to top-k mode: for every frequent item only
// the k closed patterns of highest support containing it are output, and
// branches that cannot improve any such list are pruned. k must be positive.
//
// Ties on the k-th support are resolved in favor of the pattern found
// first, so with more than one worker the exact set of tied patterns kept
// may vary between runs. Their supports do not.
func WithTopK(k int) Option {
	return func(o *options) {
		o.k = k
		o.topK = true
	}
}

// WithBreadth expands the first n extensions of the root before the
// workers start, and deals them round-robin to the workers' stacks.
// n == 0 expands every root extension.
//
// Without this option the root is handed to the first worker as is and the
// others start by stealing.
func WithBreadth(n int) Option {
	return func(o *options) {
		o.breadth = n
		o.seeded = true
	}
}

// WithStarters restricts the extensions of the root to the given items.
// Patterns not containing any of them, apart from the root closure, are
// not explored.
func WithStarters(items ...int32) Option {
	return func(o *options) {
		o.starters = items
	}
}

// WithGroup restricts the extensions of the root to the items whose id
// modulo groups equals id. Running every id in [0, groups) partitions the
// search space between independent runs.
func WithGroup(groups, id int) Option {
	return func(o *options) {
		o.groups = groups
		o.group = id
	}
}

// WithSortedItems emits the items of every pattern in ascending order.
// Otherwise they come in discovery order.
func WithSortedItems() Option {
	return func(o *options) {
		o.sortedItems = true
	}
}

// WithProgressInterval sets the minimum delay between two progress lines
// logged by the workers.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// WithMetricsCollector sets a custom metrics collector.
//
// If nil is passed, the no-op collector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger sets a custom structured logger.
//
// If nil is passed, logging is disabled.
//
// Example:
//
//	logger := fimgo.NewJSONLogger(slog.LevelInfo)
//	m, _ := fimgo.New(100, fimgo.WithLogger(logger))
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithLogLevel is a shorthand for a text logger to stderr at the given level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(opts []Option) options {
	o := options{
		workers:          runtime.GOMAXPROCS(0),
		breadth:          scheduler.NoBreadth,
		progressInterval: scheduler.DefaultProgressInterval,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

package fimgo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/fimgo/internal/dataset"
	"github.com/hupe1980/fimgo/internal/explore"
	"github.com/hupe1980/fimgo/internal/scheduler"
	"github.com/hupe1980/fimgo/model"
	"github.com/hupe1980/fimgo/sink"
	"github.com/hupe1980/fimgo/topk"
)

// Stats are the counters of a mining run.
type Stats = scheduler.Stats

// Result summarizes a completed run.
type Result struct {
	// Transactions is the number of records read from the source.
	Transactions int
	// FrequentItems is the number of items reaching the minimum support,
	// root closure excluded.
	FrequentItems int
	// Patterns is the number of patterns the output collector received.
	Patterns int64
	// Stats are the exploration counters, merged over every worker.
	Stats *Stats
}

// Miner enumerates the closed frequent itemsets of transaction sources.
// A Miner holds no state between runs and may be reused.
type Miner struct {
	minSupport int
	opts       options
}

// New returns a Miner for the given absolute support threshold.
func New(minSupport int, optFns ...Option) (*Miner, error) {
	if minSupport < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMinSupport, minSupport)
	}

	opts := applyOptions(optFns)
	if opts.workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, opts.workers)
	}
	if opts.topK && opts.k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, opts.k)
	}
	if opts.seeded && opts.breadth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBreadth, opts.breadth)
	}
	if opts.groups != 0 && (opts.groups < 0 || opts.group < 0 || opts.group >= opts.groups) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidGroup, opts.group, opts.groups)
	}
	for _, it := range opts.starters {
		if it < 0 {
			return nil, fmt.Errorf("%w: starter %d", ErrInvalidTransaction, it)
		}
	}

	return &Miner{minSupport: minSupport, opts: opts}, nil
}

// MinSupport returns the absolute support threshold.
func (m *Miner) MinSupport() int { return m.minSupport }

// Mine reads src once and hands every closed pattern (every top-k pattern
// in top-k mode) to out, then closes out.
//
// When loading or mining fails, out is aborted instead of closed when it
// implements sink.Aborter. Errors are wrapped in a *StageError.
func (m *Miner) Mine(ctx context.Context, src model.Source, out sink.Collector) (*Result, error) {
	logger := m.opts.logger.WithMinSupport(m.minSupport).WithWorkers(m.opts.workers)
	metrics := m.opts.metricsCollector

	start := time.Now()
	ds, counters, n, err := m.load(src)
	metrics.RecordLoad(time.Since(start), n, err)
	logger.LogLoad(ctx, n, frequents(counters), time.Since(start), err)
	if err != nil {
		m.abort(ctx, logger, out)
		return nil, stageError(StageLoad, err)
	}

	collector := out
	if m.opts.sortedItems {
		collector = sink.NewSorted(collector)
	}

	selectors := []explore.Selector{explore.FirstParentTest{}}

	var ranked *topk.Collector
	if m.opts.topK {
		logger = logger.WithK(m.opts.k)
		ranked, err = topk.New(collector, m.opts.k, slices.Concat(counters.Reverse, counters.Closure))
		if err != nil {
			m.abort(ctx, logger, out)
			return nil, stageError(StageMine, err)
		}
		collector = ranked
		selectors = append(selectors, ranked.Selector())
	}

	switch {
	case m.opts.groups > 0:
		selectors = append(selectors, explore.NewModuloGroupFilter(m.opts.groups, m.opts.group, counters))
	case len(m.opts.starters) > 0:
		selectors = append(selectors, explore.NewGroupFilter(m.opts.starters))
	}

	root := explore.NewRoot(ds, counters, selectors...)

	start = time.Now()
	stats, err := scheduler.Run(ctx, root, collector, scheduler.Config{
		Workers:          m.opts.workers,
		Breadth:          m.breadth(),
		Logger:           logger.Logger,
		ProgressInterval: m.opts.progressInterval,
	})
	if stats == nil {
		stats = scheduler.NewStats()
	}
	metrics.RecordMine(time.Since(start), stats, err)
	logger.LogMine(ctx, stats, time.Since(start), err)
	if err != nil {
		m.abort(ctx, logger, collector)
		return nil, stageError(StageMine, err)
	}

	start = time.Now()
	patterns, err := collector.Close()
	metrics.RecordClose(time.Since(start), patterns, err)
	logger.LogClose(ctx, patterns, false, err)
	if err != nil {
		return nil, stageError(StageCollect, err)
	}

	return &Result{
		Transactions:  n,
		FrequentItems: counters.NbFrequents(),
		Patterns:      patterns,
		Stats:         stats,
	}, nil
}

// load counts the records of src while building the root dataset.
func (m *Miner) load(src model.Source) (dataset.Dataset, *dataset.Counters, int, error) {
	n := 0
	counted := func(yield func(model.Transaction, error) bool) {
		for tx, err := range src {
			if err == nil {
				n++
			}
			if !yield(tx, err) {
				return
			}
		}
	}

	ds, c, err := dataset.Load(counted, m.minSupport)
	return ds, c, n, err
}

func (m *Miner) breadth() int {
	if !m.opts.seeded {
		return scheduler.NoBreadth
	}
	return m.opts.breadth
}

func (m *Miner) abort(ctx context.Context, logger *Logger, c sink.Collector) {
	err := sink.Abort(c)
	if errors.Is(err, sink.ErrClosed) {
		err = nil
	}
	logger.LogClose(ctx, 0, true, err)
}

func frequents(c *dataset.Counters) int {
	if c == nil {
		return 0
	}
	return c.NbFrequents()
}

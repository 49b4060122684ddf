package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/cpu"
	"golang.org/x/time/rate"

	"github.com/hupe1980/fimgo/internal/explore"
	"github.com/hupe1980/fimgo/sink"
)

// NoBreadth disables seeding: the root goes to the first worker as is.
const NoBreadth = -1

// progressEvery is the number of patterns a worker collects between two
// progress checks.
const progressEvery = 4096

// DefaultProgressInterval is used when Config.ProgressInterval is not set.
const DefaultProgressInterval = 10 * time.Second

// WorkerError wraps the failure of one worker.
type WorkerError struct {
	Worker int
	Err    error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("scheduler: worker %d: %v", e.Worker, e.Err)
}

func (e *WorkerError) Unwrap() error { return e.Err }

// Config controls a run.
type Config struct {
	// Workers is the number of workers; 1 selects plain recursion.
	Workers int
	// Breadth is the number of root children expanded before the workers
	// start and dealt to them round-robin. 0 expands all of them; NoBreadth
	// disables seeding.
	Breadth int
	// Logger receives debug and progress lines. Nil disables logging.
	Logger *slog.Logger
	// ProgressInterval is the minimum delay between two progress lines.
	ProgressInterval time.Duration
}

type runner struct {
	ctx       context.Context
	done      <-chan struct{}
	collector sink.Collector
	logger    *slog.Logger
	progress  *rate.Sometimes
	failed    atomic.Bool
}

// Run collects root's pattern when it reaches the minimum support, then
// every pattern of the tree below it.
func Run(ctx context.Context, root *explore.Step, collector sink.Collector, cfg Config) (*Stats, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("scheduler: invalid worker count %d", cfg.Workers)
	}

	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	r := &runner{
		ctx:       ctx,
		done:      ctx.Done(),
		collector: collector,
		logger:    cfg.Logger,
		progress:  &rate.Sometimes{Interval: interval},
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}

	stats := NewStats()
	if root.Support() < root.Counters.MinSupport {
		return stats, nil
	}
	r.collect(root, stats)

	seeds, err := r.seed(root, cfg.Breadth, stats)
	if err != nil {
		return stats, err
	}

	if cfg.Workers == 1 {
		err := guard(0, func() error {
			for _, s := range append(seeds, root) {
				if err := r.recurse(s, stats); err != nil {
					return err
				}
			}
			return nil
		})
		return stats, err
	}

	return r.parallel(root, seeds, cfg.Workers, stats)
}

// seed expands up to breadth children of root, collecting them.
func (r *runner) seed(root *explore.Step, breadth int, stats *Stats) ([]*explore.Step, error) {
	if breadth == NoBreadth {
		return nil, nil
	}

	var seeds []*explore.Step
	for breadth == 0 || len(seeds) < breadth {
		child, err := root.Next(&stats.Stats)
		if err != nil {
			return nil, err
		}
		if child == nil {
			break
		}
		r.collect(child, stats)
		seeds = append(seeds, child)
	}

	r.logger.DebugContext(r.ctx, "seeded workers", slog.Int("seeds", len(seeds)))
	return seeds, nil
}

func (r *runner) collect(s *explore.Step, stats *Stats) {
	r.collector.Collect(s.Support(), s.Pattern)
	stats.record(s.Pattern)

	if stats.Patterns%progressEvery == 0 {
		r.progress.Do(func() {
			r.logger.InfoContext(r.ctx, "mining progress",
				slog.Int64("patterns", stats.Patterns),
				slog.Int64("steals", stats.Steals))
		})
	}
}

// cancelled returns the context error once the run is cancelled.
func (r *runner) cancelled() error {
	select {
	case <-r.done:
		return r.ctx.Err()
	default:
		return nil
	}
}

func (r *runner) recurse(s *explore.Step, stats *Stats) error {
	for {
		if err := r.cancelled(); err != nil {
			return err
		}
		child, err := s.Next(&stats.Stats)
		if err != nil {
			return err
		}
		if child == nil {
			return nil
		}
		r.collect(child, stats)
		if err := r.recurse(child, stats); err != nil {
			return err
		}
	}
}

// stack is a worker's job list. The owner pushes and pops under the write
// lock and reads its top without locking; thieves advance jobs under the
// read lock.
type stack struct {
	_    cpu.CacheLinePad
	mu   sync.RWMutex
	jobs []*explore.Step
	_    cpu.CacheLinePad
}

func (s *stack) push(job *explore.Step) {
	s.mu.Lock()
	s.jobs = append(s.jobs, job)
	s.mu.Unlock()
}

func (s *stack) pop() {
	s.mu.Lock()
	s.jobs[len(s.jobs)-1] = nil
	s.jobs = s.jobs[:len(s.jobs)-1]
	s.mu.Unlock()
}

func (s *stack) top() *explore.Step {
	if len(s.jobs) == 0 {
		return nil
	}
	return s.jobs[len(s.jobs)-1]
}

// steal advances the jobs bottom first until one yields a child. The read
// lock is held throughout, so the owner cannot pop a job while it is advanced.
func (s *stack) steal(stats *explore.Stats) (*explore.Step, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.Exhausted() {
			continue
		}
		child, err := job.Next(stats)
		if err != nil || child != nil {
			return child, err
		}
	}
	return nil, nil
}

func (r *runner) parallel(root *explore.Step, seeds []*explore.Step, workers int, stats *Stats) (*Stats, error) {
	stacks := make([]*stack, workers)
	for i := range stacks {
		stacks[i] = &stack{}
	}
	if !root.Exhausted() {
		stacks[0].push(root)
	}
	for i, s := range seeds {
		stacks[i%workers].push(s)
	}

	local := make([]*Stats, workers)
	var g errgroup.Group
	for w := range workers {
		local[w] = NewStats()
		g.Go(func() error {
			err := guard(w, func() error { return r.work(w, stacks, local[w]) })
			if err != nil {
				r.failed.Store(true)
			}
			return err
		})
	}
	err := g.Wait()

	for _, s := range local {
		stats.Merge(s)
	}
	return stats, err
}

func (r *runner) work(id int, stacks []*stack, stats *Stats) error {
	own := stacks[id]
	for {
		// another worker failed and its error is reported
		if r.failed.Load() {
			return nil
		}
		if err := r.cancelled(); err != nil {
			return err
		}

		job := own.top()
		if job == nil {
			stolen, err := r.steal(id, stacks, stats)
			if err != nil {
				return err
			}
			if stolen == nil {
				r.logger.DebugContext(r.ctx, "worker retired",
					slog.Int("worker", id),
					slog.Int64("patterns", stats.Patterns),
					slog.Int64("steals", stats.Steals))
				return nil
			}
			r.collect(stolen, stats)
			own.push(stolen)
			continue
		}

		child, err := job.Next(&stats.Stats)
		if err != nil {
			return err
		}
		if child == nil {
			own.pop()
			continue
		}
		r.collect(child, stats)
		own.push(child)
	}
}

// steal asks the other workers' jobs, bottom first, for a child.
func (r *runner) steal(id int, stacks []*stack, stats *Stats) (*explore.Step, error) {
	for off := 1; off < len(stacks); off++ {
		child, err := stacks[(id+off)%len(stacks)].steal(&stats.Stats)
		if err != nil {
			return nil, err
		}
		if child != nil {
			stats.Steals++
			return child, nil
		}
	}
	return nil, nil
}

// guard runs fn as worker id, turning a panic into an error.
func guard(id int, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v\n%s", p, debug.Stack())
		}
		if err != nil {
			err = &WorkerError{Worker: id, Err: err}
		}
	}()
	return fn()
}

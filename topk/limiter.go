package topk

import (
	"math"
	"sync"

	"github.com/hupe1980/fimgo/internal/explore"
)

// Selector returns the exploration limiter bound to c.
func (c *Collector) Selector() explore.Selector {
	return newLimiter(c)
}

// limiter rejects an extension when no pattern of its branch can enter the
// top-k list of any item it would contain.
//
// Candidates below ext are scanned in ascending order, and the scan position
// is cached per step: (prevItem, prevResult) means every pattern item and
// every scanned item up to prevItem had a bound of at least prevResult, or
// can never be part of a pattern below this step. Bounds only grow, so the
// cache stays valid and an extension whose support is at most prevResult
// resumes the scan after prevItem.
type limiter struct {
	c *Collector

	mu         sync.Mutex
	prevItem   int
	prevResult int
}

func newLimiter(c *Collector) *limiter {
	return &limiter{c: c, prevItem: -1, prevResult: -1}
}

func (l *limiter) Allow(ext int, s *explore.Step) (bool, error) {
	l.mu.Lock()
	prevItem, prevResult := l.prevItem, l.prevResult
	l.mu.Unlock()

	counters := s.Counters
	supports := counters.Supports
	extSupport := supports[ext]

	if l.c.Bound(counters.Original(ext)) < extSupport {
		return true, nil
	}

	from := 0
	if prevResult >= extSupport {
		from = prevItem + 1
	} else {
		prevItem, prevResult = -1, math.MaxInt
		for _, it := range s.Pattern {
			b := l.c.Bound(it)
			if b < extSupport {
				return true, nil
			}
			prevResult = min(prevResult, b)
		}
	}

	for i := range counters.SortedFrequents(from, ext) {
		b := l.c.Bound(counters.Original(i))
		if b >= min(extSupport, supports[i]) {
			prevItem, prevResult = i, min(prevResult, b)
			continue
		}

		fp := s.FailedFirstParent(i)
		if fp <= ext {
			l.update(prevItem, prevResult)
			return true, nil
		}
		if fp < counters.MaxCandidate {
			prevItem, prevResult = i, min(prevResult, b)
		}
	}

	l.update(prevItem, prevResult)
	return false, nil
}

func (l *limiter) update(item, result int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if item >= l.prevItem {
		l.prevItem, l.prevResult = item, result
	}
}

func (l *limiter) Copy() explore.Selector { return newLimiter(l.c) }

func (l *limiter) Kind() explore.Kind { return explore.KindTopK }

package explore

import (
	"errors"

	"github.com/hupe1980/fimgo/internal/dataset"
)

// WrongFirstParent is the rejection signal of the first-parent test. It
// never leaves Step.Next.
type WrongFirstParent = dataset.WrongFirstParent

// Selector vetoes candidate extensions.
//
// Allow may be called concurrently on the same Step. A Selector may return a
// *WrongFirstParent error to reject ext and record which item caused it; any
// other error aborts the exploration.
type Selector interface {
	Allow(ext int, s *Step) (bool, error)

	// Copy returns the selector to install on child steps, or nil to leave
	// it out of them.
	Copy() Selector

	Kind() Kind
}

// Chain is an ordered list of selectors. A candidate is explored only when
// every selector allows it.
type Chain []Selector

// Copy builds the chain of a child step.
func (c Chain) Copy() Chain {
	out := make(Chain, 0, len(c))
	for _, sel := range c {
		if next := sel.Copy(); next != nil {
			out = append(out, next)
		}
	}
	return out
}

func (c Chain) allow(ext int, s *Step, stats *Stats) (bool, error) {
	for _, sel := range c {
		ok, err := sel.Allow(ext, s)

		var wfp *WrongFirstParent
		switch {
		case errors.As(err, &wfp):
			s.failed[ext].Store(int32(wfp.FirstParent + 1))
			stats.Rejections[sel.Kind()]++
			return false, nil
		case err != nil:
			return false, err
		case !ok:
			stats.Rejections[sel.Kind()]++
			return false, nil
		}
	}
	return true, nil
}

// FirstParentTest rejects ext when a greater item with at least the same
// support occurs in every transaction containing ext. It is stateless.
type FirstParentTest struct{}

func (FirstParentTest) Allow(ext int, s *Step) (bool, error) {
	supports := s.Counters.Supports
	for i := s.Counters.MaxFrequent(); i > ext; i-- {
		if supports[i] >= supports[ext] && s.Dataset.Included(ext, i) {
			return false, &WrongFirstParent{Extension: ext, FirstParent: i}
		}
	}
	return true, nil
}

func (t FirstParentTest) Copy() Selector { return t }

func (FirstParentTest) Kind() Kind { return KindFirstParent }

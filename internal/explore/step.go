package explore

import (
	"errors"
	"slices"
	"sync/atomic"

	"github.com/hupe1980/fimgo/internal/dataset"
)

// Step is a node of the enumeration tree.
type Step struct {
	// Pattern is the closed pattern in original ids.
	Pattern []int32
	// Dataset is the projection on Pattern, over local ids.
	Dataset dataset.Dataset
	// Counters summarizes Dataset.
	Counters *dataset.Counters

	selectors Chain
	cursor    atomic.Int64
	// failed[i] is 1 + the item that rejected i as a first parent, 0 if none.
	failed []atomic.Int32
}

// NewRoot returns the step of the closure of the empty pattern.
func NewRoot(ds dataset.Dataset, c *dataset.Counters, selectors ...Selector) *Step {
	return newStep(slices.Clone(c.Closure), ds, c, Chain(selectors))
}

func newStep(pattern []int32, ds dataset.Dataset, c *dataset.Counters, selectors Chain) *Step {
	return &Step{
		Pattern:   pattern,
		Dataset:   ds,
		Counters:  c,
		selectors: selectors,
		failed:    make([]atomic.Int32, c.MaxCandidate),
	}
}

// Support returns the support of Pattern.
func (s *Step) Support() int { return s.Counters.Support }

// Selectors returns the chain applied to candidates of s.
func (s *Step) Selectors() Chain { return s.selectors }

// FailedFirstParent returns the item that rejected candidate item as a first
// parent, or -1 when none did (or the candidate was not tried yet).
func (s *Step) FailedFirstParent(item int) int {
	return int(s.failed[item].Load()) - 1
}

// Exhausted reports whether every candidate was handed out.
func (s *Step) Exhausted() bool {
	return s.cursor.Load() >= int64(s.Counters.MaxCandidate)
}

// Next returns the child step of the next acceptable candidate, or nil once
// the candidates are exhausted. Rejections are counted in stats.
func (s *Step) Next(stats *Stats) (*Step, error) {
	for {
		ext := int(s.cursor.Add(1) - 1)
		if ext >= s.Counters.MaxCandidate {
			return nil, nil
		}

		ok, err := s.selectors.allow(ext, s, stats)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		ds, c, err := s.Dataset.Project(s.Counters, ext)
		if err != nil {
			var wfp *WrongFirstParent
			if errors.As(err, &wfp) {
				s.failed[ext].Store(int32(wfp.FirstParent + 1))
				stats.CaughtWrongFirstParents++
				continue
			}
			return nil, err
		}

		pattern := make([]int32, 0, len(s.Pattern)+1+len(c.Closure))
		pattern = append(pattern, s.Pattern...)
		pattern = append(pattern, s.Counters.Original(ext))
		pattern = append(pattern, c.Closure...)

		stats.Steps++
		return newStep(pattern, ds, c, s.selectors.Copy()), nil
	}
}

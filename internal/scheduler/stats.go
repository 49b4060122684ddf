package scheduler

import (
	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/hupe1980/fimgo/internal/explore"
)

// maxPatternLength bounds the pattern length histogram.
const maxPatternLength = 1 << 20

// Stats are the counters of a run.
type Stats struct {
	explore.Stats

	// Patterns counts collected patterns.
	Patterns int64
	// Steals counts children obtained from another worker's stack.
	Steals int64
	// Lengths is the distribution of collected pattern lengths.
	Lengths *hdrhistogram.Histogram
}

// NewStats returns empty statistics.
func NewStats() *Stats {
	return &Stats{Lengths: hdrhistogram.New(1, maxPatternLength, 3)}
}

func (s *Stats) record(pattern []int32) {
	s.Patterns++
	_ = s.Lengths.RecordValue(int64(len(pattern)))
}

// Merge adds o into s.
func (s *Stats) Merge(o *Stats) {
	s.Stats.Merge(&o.Stats)
	s.Patterns += o.Patterns
	s.Steals += o.Steals
	s.Lengths.Merge(o.Lengths)
}

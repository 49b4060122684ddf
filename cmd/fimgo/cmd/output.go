package cmd

import (
	"fmt"
	"strings"

	"github.com/hupe1980/fimgo/internal/explore"
	"github.com/hupe1980/fimgo/internal/scheduler"
)

func formatStats(s *scheduler.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  steps:                  %d\n", s.Steps)
	fmt.Fprintf(&b, "  steals:                 %d\n", s.Steals)
	fmt.Fprintf(&b, "  wrong first parents:    %d caught, %d rejected\n",
		s.CaughtWrongFirstParents, s.Rejected(explore.KindFirstParent))
	fmt.Fprintf(&b, "  top-k rejections:       %d\n", s.Rejected(explore.KindTopK))
	fmt.Fprintf(&b, "  group rejections:       %d\n", s.Rejected(explore.KindGroup))
	if s.Lengths.TotalCount() > 0 {
		fmt.Fprintf(&b, "  pattern length:         mean %.2f, p50 %d, p99 %d, max %d\n",
			s.Lengths.Mean(), s.Lengths.ValueAtQuantile(50), s.Lengths.ValueAtQuantile(99), s.Lengths.Max())
	}
	return b.String()
}

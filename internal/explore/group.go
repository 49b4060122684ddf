package explore

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/fimgo/internal/dataset"
)

// GroupFilter restricts the extensions of the step it is installed on to a
// set of original item ids. It does not propagate to child steps, so it
// only makes sense on a root.
type GroupFilter struct {
	allowed *roaring.Bitmap
}

// NewGroupFilter allows the given original item ids.
func NewGroupFilter(items []int32) *GroupFilter {
	bm := roaring.New()
	for _, it := range items {
		bm.Add(uint32(it))
	}
	return &GroupFilter{allowed: bm}
}

// NewModuloGroupFilter allows the items of c whose original id modulo
// groups equals id.
func NewModuloGroupFilter(groups, id int, c *dataset.Counters) *GroupFilter {
	bm := roaring.New()
	for _, it := range c.Reverse {
		if int(it)%groups == id {
			bm.Add(uint32(it))
		}
	}
	return &GroupFilter{allowed: bm}
}

// Len returns the number of allowed items.
func (g *GroupFilter) Len() int { return int(g.allowed.GetCardinality()) }

func (g *GroupFilter) Allow(ext int, s *Step) (bool, error) {
	return g.allowed.Contains(uint32(s.Counters.Original(ext))), nil
}

func (g *GroupFilter) Copy() Selector { return nil }

func (g *GroupFilter) Kind() Kind { return KindGroup }

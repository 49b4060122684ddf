package explore

// Kind identifies the selector that rejected a candidate.
type Kind uint8

const (
	KindFirstParent Kind = iota
	KindTopK
	KindGroup

	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindFirstParent:
		return "first_parent"
	case KindTopK:
		return "top_k"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Stats accumulates exploration counters. It is not safe for concurrent use:
// each worker owns one and they are merged once the workers are done.
type Stats struct {
	// Steps counts child steps created.
	Steps int64
	// CaughtWrongFirstParents counts projections abandoned because their
	// closure held a greater item.
	CaughtWrongFirstParents int64
	// Rejections counts candidates vetoed, per selector kind.
	Rejections [numKinds]int64
}

// Rejected returns the rejections counted for kind.
func (s *Stats) Rejected(kind Kind) int64 {
	if kind >= numKinds {
		return 0
	}
	return s.Rejections[kind]
}

// Merge adds o into s.
func (s *Stats) Merge(o *Stats) {
	s.Steps += o.Steps
	s.CaughtWrongFirstParents += o.CaughtWrongFirstParents
	for k := range s.Rejections {
		s.Rejections[k] += o.Rejections[k]
	}
}

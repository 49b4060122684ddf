package transactions

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/fimgo/internal/conv"
)

func build[W conv.Word](t *testing.T, rows ...[]int32) *List[W] {
	t.Helper()

	l := New[W](len(rows), 16)
	for _, r := range rows {
		_, err := l.Append(1, r)
		require.NoError(t, err)
	}

	return l
}

func TestList_Append(t *testing.T) {
	l := New[uint8](2, 4)

	tid, err := l.Append(3, []int32{0, 2, 7})
	require.NoError(t, err)
	assert.Equal(t, 0, tid)

	tid, err = l.Append(1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, tid)

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []uint8{0, 2, 7}, l.Get(0))
	assert.Equal(t, 3, l.Weight(0))
	assert.Empty(t, l.Get(1))
}

func TestList_AppendErrors(t *testing.T) {
	l := New[uint8](2, 4)

	_, err := l.Append(0, []int32{1})
	assert.ErrorIs(t, err, ErrWeight)

	_, err = l.Append(1, []int32{2, 2})
	assert.ErrorIs(t, err, ErrOrder)

	_, err = l.Append(1, []int32{1, 300})
	assert.ErrorIs(t, err, conv.ErrOverflow)

	// failed appends leave nothing behind
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.Bytes())
}

func TestList_CompressMergesEqualPrefixes(t *testing.T) {
	l := build[uint16](t,
		[]int32{0, 1, 5, 6},
		[]int32{0, 2, 5},
		[]int32{0, 1, 6, 7},
		[]int32{0, 1, 5, 7},
	)

	l.Compress(5)

	assert.Equal(t, 3, l.Weight(0))
	assert.Equal(t, []uint16{0, 1}, l.Get(0))
	assert.Equal(t, 1, l.Weight(1))
	assert.Equal(t, []uint16{0, 2, 5}, l.Get(1))
	assert.Equal(t, 0, l.Weight(2))
	assert.Equal(t, 0, l.Weight(3))

	got := maps.Collect(l.All())
	assert.Len(t, got, 2)
}

func TestList_CompressKeepsSharedSuffix(t *testing.T) {
	l := build[int32](t,
		[]int32{1, 4, 5},
		[]int32{1, 3, 4, 5},
		[]int32{1, 4, 5, 9},
	)

	l.Compress(3)

	assert.Equal(t, 3, l.Weight(0))
	assert.Equal(t, []int32{1, 4, 5}, l.Get(0))
}

func TestList_CompressDeduplicates(t *testing.T) {
	l := build[uint8](t,
		[]int32{1, 2},
		[]int32{2},
		[]int32{1, 2},
		[]int32{1, 2},
	)

	// a core above every item compares whole transactions
	l.Compress(1000)

	assert.Equal(t, 3, l.Weight(0))
	assert.Equal(t, 1, l.Weight(1))
	assert.Equal(t, 0, l.Weight(2))
	assert.Equal(t, 0, l.Weight(3))
	assert.Equal(t, []uint8{1, 2}, l.Get(0))
}

func TestList_CompressPreservesWeightedCountsBelowCore(t *testing.T) {
	rows := [][]int32{
		{0, 3, 4}, {1, 4}, {0, 3}, {0, 2, 4}, {1, 3, 4}, {0, 3, 4}, {2},
	}
	l := build[uint8](t, rows...)

	count := func() map[uint8]int {
		c := map[uint8]int{}
		for tid, items := range l.All() {
			for _, it := range items {
				c[it] += l.Weight(tid)
			}
		}
		return c
	}

	before := count()
	l.Compress(3)
	after := count()

	for it := uint8(0); it < 3; it++ {
		assert.Equal(t, before[it], after[it], "item %d", it)
	}
	for it := uint8(3); it < 5; it++ {
		assert.LessOrEqual(t, after[it], before[it], "item %d", it)
	}
}

func TestList_Clone(t *testing.T) {
	l := build[uint8](t, []int32{1, 2}, []int32{1, 2})

	c := l.Clone()
	c.Compress(10)

	assert.Equal(t, 1, l.Weight(0))
	assert.Equal(t, 1, l.Weight(1))
	assert.Equal(t, 2, c.Weight(0))
	assert.Equal(t, 0, c.Weight(1))
}

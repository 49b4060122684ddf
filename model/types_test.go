package model

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSlice(t *testing.T) {
	src := FromSlice([]Transaction{
		NewTransaction(3, 1),
		NewTransaction(2).WithWeight(4),
	})

	var got []Transaction
	for tx, err := range src {
		assert.NoError(t, err)
		got = append(got, tx)
	}

	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Weight)
	assert.Equal(t, 4, got[1].Weight)
	assert.Equal(t, []int32{2}, got[1].Items)
}

func TestFromSlice_StopsEarly(t *testing.T) {
	n := 0
	for range FromSlice([]Transaction{NewTransaction(1), NewTransaction(2)}) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestPattern_Sorted(t *testing.T) {
	p := Pattern{Support: 3, Items: []int32{5, 1, 3}}
	s := p.Sorted()

	assert.Equal(t, []int32{1, 3, 5}, s.Items)
	assert.Equal(t, []int32{5, 1, 3}, p.Items)
	assert.Equal(t, "[1 3 5]:3", s.String())
}

func TestCompare(t *testing.T) {
	ps := []Pattern{
		{Support: 2, Items: []int32{1, 3}},
		{Support: 4, Items: nil},
		{Support: 2, Items: []int32{1, 2}},
		{Support: 3, Items: []int32{1}},
	}
	slices.SortFunc(ps, Compare)

	assert.Equal(t, []Pattern{
		{Support: 4, Items: nil},
		{Support: 3, Items: []int32{1}},
		{Support: 2, Items: []int32{1, 2}},
		{Support: 2, Items: []int32{1, 3}},
	}, ps)
}

func TestSource_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	var src Source = func(yield func(Transaction, error) bool) {
		if !yield(NewTransaction(1), nil) {
			return
		}
		yield(Transaction{}, boom)
	}

	var last error
	for _, err := range src {
		last = err
	}
	assert.ErrorIs(t, last, boom)
}

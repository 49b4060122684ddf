package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/fimgo/model"
)

func TestTransactions(t *testing.T) {
	rng := NewRNG(4711)

	txs := rng.Transactions(50, 10, 0.5)

	assert.Equal(t, 50, len(txs))
	for _, tx := range txs {
		assert.GreaterOrEqual(t, tx.Weight, 1)
		for _, it := range tx.Items {
			assert.Less(t, it, int32(10))
		}
	}

	again := NewRNG(4711).Transactions(50, 10, 0.5)
	assert.Equal(t, txs, again)
}

func TestOracle_Closed(t *testing.T) {
	o := NewOracle([]model.Transaction{
		model.NewTransaction(1, 2, 3),
		model.NewTransaction(1, 2),
		model.NewTransaction(1, 3),
		model.NewTransaction(2, 3),
	})

	assert.Equal(t, []model.Pattern{
		{Support: 4, Items: nil},
		{Support: 3, Items: []int32{1}},
		{Support: 2, Items: []int32{1, 2}},
		{Support: 2, Items: []int32{1, 3}},
		{Support: 3, Items: []int32{2}},
		{Support: 2, Items: []int32{2, 3}},
		{Support: 3, Items: []int32{3}},
	}, o.Closed(2))

	assert.Equal(t, 1, o.Support([]int32{1, 2, 3}))
	assert.Equal(t, 0, o.Support([]int32{9}))
}

func TestOracle_Weights(t *testing.T) {
	o := NewOracle([]model.Transaction{
		model.NewTransaction(1, 2).WithWeight(3),
		model.NewTransaction(1),
	})

	assert.Equal(t, 4, o.Support([]int32{1}))
	assert.Equal(t, []int32{1}, o.Closure(o.Tids(nil)))
	assert.Equal(t, []model.Pattern{
		{Support: 4, Items: []int32{1}},
		{Support: 3, Items: []int32{1, 2}},
	}, o.Closed(1))
}

func TestOracle_TopKSupports(t *testing.T) {
	closed := []model.Pattern{
		{Support: 3, Items: []int32{1}},
		{Support: 2, Items: []int32{1, 2}},
		{Support: 5, Items: []int32{2}},
	}

	got := NewOracle(nil).TopKSupports(closed, 1)
	assert.Equal(t, map[int32][]int{1: {3}, 2: {5}}, got)
}

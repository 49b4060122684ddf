package queue

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
)

func drain(pq *PriorityQueue) []int32 {
	var out []int32
	for {
		it, ok := pq.PopItem()
		if !ok {
			return out
		}
		out = append(out, it.Item)
	}
}

func TestPriorityQueue_Order(t *testing.T) {
	pq := From([]PriorityQueueItem{
		{Item: 7, Support: 2},
		{Item: 3, Support: 5},
		{Item: 9, Support: 5},
		{Item: 1, Support: 2},
	})

	assert.Equal(t, []int32{3, 9, 1, 7}, drain(pq))
	assert.Equal(t, 0, pq.Len())

	_, ok := pq.PopItem()
	assert.False(t, ok)
}

func TestPriorityQueue_From(t *testing.T) {
	pq := From([]PriorityQueueItem{
		{Item: 4, Support: 1},
		{Item: 2, Support: 3},
		{Item: 8, Support: 3},
		{Item: 0, Support: 9},
	})

	assert.Equal(t, []int32{0, 2, 8, 4}, drain(pq))
}

func TestPriorityQueue_HeapInterface(t *testing.T) {
	pq := From(nil)
	heap.Push(pq, PriorityQueueItem{Item: 5, Support: 1})
	heap.Push(pq, PriorityQueueItem{Item: 6, Support: 4})

	got := heap.Pop(pq).(PriorityQueueItem)
	assert.Equal(t, int32(6), got.Item)
	assert.Equal(t, []int32{5}, drain(pq))
}

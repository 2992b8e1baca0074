package datastructure

import (
	"container/heap"
	"errors"
)

var ErrEmptyQueue = errors.New("priority queue is empty")

// PriorityQueueNode is a heap entry. Entries with equal Rank leave the heap in insertion order.
type PriorityQueueNode[T any] struct {
	Rank float64
	Item T
	seq  uint64
}

// MinHeap is a binary min-heap keyed by (Rank, insertion sequence). It does not support
// decrease-key; searches push a new entry and skip stale ones when they are popped.
type MinHeap[T any] struct {
	heap []PriorityQueueNode[T]
	seq  uint64
}

func NewMinHeap[T any]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
	}
}

func (h *MinHeap[T]) less(i, j int) bool {
	a, b := h.heap[i], h.heap[j]
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.seq < b.seq
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
}

func (h *MinHeap[T]) heapifyUp(index int) {
	for index > 0 {
		parent := (index - 1) / 2
		if !h.less(index, parent) {
			return
		}
		h.swap(index, parent)
		index = parent
	}
}

func (h *MinHeap[T]) heapifyDown(index int) {
	n := len(h.heap)
	for {
		smallest := index
		left := 2*index + 1
		right := 2*index + 2
		if left < n && h.less(left, smallest) {
			smallest = left
		}
		if right < n && h.less(right, smallest) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) Insert(node PriorityQueueNode[T]) {
	node.seq = h.seq
	h.seq++
	h.heap = append(h.heap, node)
	h.heapifyUp(len(h.heap) - 1)
}

func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrEmptyQueue
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if len(h.heap) == 0 {
		return PriorityQueueNode[T]{}, ErrEmptyQueue
	}
	root := h.heap[0]
	last := len(h.heap) - 1
	h.heap[0] = h.heap[last]
	h.heap = h.heap[:last]
	if last > 0 {
		h.heapifyDown(0)
	}
	return root, nil
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

// Smallest returns up to k entries in pop order without modifying the heap. Entries for
// which accept returns false are left out but their subtrees are still explored.
// It runs in O(m log m) where m is the number of entries inspected.
func (h *MinHeap[T]) Smallest(k int, accept func(item T) bool) []PriorityQueueNode[T] {
	if k <= 0 || len(h.heap) == 0 {
		return nil
	}

	result := make([]PriorityQueueNode[T], 0, min(k, len(h.heap)))
	cand := &indexHeap[T]{h: h, idx: []int{0}}

	for cand.Len() > 0 && len(result) < k {
		i := heap.Pop(cand).(int)
		if accept == nil || accept(h.heap[i].Item) {
			result = append(result, h.heap[i])
		}
		if left := 2*i + 1; left < len(h.heap) {
			heap.Push(cand, left)
		}
		if right := 2*i + 2; right < len(h.heap) {
			heap.Push(cand, right)
		}
	}
	return result
}

// indexHeap orders positions of a MinHeap by the entries stored there.
type indexHeap[T any] struct {
	h   *MinHeap[T]
	idx []int
}

func (c *indexHeap[T]) Len() int           { return len(c.idx) }
func (c *indexHeap[T]) Less(i, j int) bool { return c.h.less(c.idx[i], c.idx[j]) }
func (c *indexHeap[T]) Swap(i, j int)      { c.idx[i], c.idx[j] = c.idx[j], c.idx[i] }
func (c *indexHeap[T]) Push(x any)         { c.idx = append(c.idx, x.(int)) }
func (c *indexHeap[T]) Pop() any {
	old := c.idx
	n := len(old)
	x := old[n-1]
	c.idx = old[:n-1]
	return x
}

package datastructure

// Queue is a FIFO queue backed by a slice. Popped slots are reclaimed once
// the dead prefix grows larger than the live part.
type Queue[T any] struct {
	items []T
	head  int
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{items: make([]T, 0)}
}

func (q *Queue[T]) Push(item T) {
	q.items = append(q.items, item)
}

func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head++

	if q.head > 1024 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return item, true
}

func (q *Queue[T]) Size() int {
	return len(q.items) - q.head
}

// Front returns up to k items from the head of the queue without removing them.
func (q *Queue[T]) Front(k int) []T {
	n := q.Size()
	if k < n {
		n = k
	}
	if n <= 0 {
		return nil
	}
	out := make([]T, n)
	copy(out, q.items[q.head:q.head+n])
	return out
}

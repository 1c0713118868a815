// Package queue is a slice-backed FIFO for breadth-first searches.
package queue

type Queue[T any] struct {
	items []T
	head  int
}

func New[T any]() *Queue[T] {
	return &Queue[T]{items: make([]T, 0, 8)}
}

func (q *Queue[T]) Add(v T) {
	q.items = append(q.items, v)
}

// Pop removes the oldest item. It panics on an empty queue.
func (q *Queue[T]) Pop() T {
	v := q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head++

	// reclaim the consumed prefix once it dominates
	if q.head > 64 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return v
}

func (q *Queue[T]) Available() bool {
	return q.Len() > 0
}

func (q *Queue[T]) Len() int {
	return len(q.items) - q.head
}

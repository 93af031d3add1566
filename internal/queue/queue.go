// Package queue defines generic FIFO queue used for breadth-first searches.
package queue

const compactThreshold = 32

// Queue is a FIFO queue. Zero value is an empty queue ready to use.
type Queue[T any] struct {
	items []T
	head  int
	zero  T
}

// New creates a queue containing items.
func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{items: make([]T, len(items))}
	copy(q.items, items)
	return q
}

func (q *Queue[T]) IsEmpty() bool {
	return q.head == len(q.items)
}

// Append adds an item to the tail of the queue.
func (q *Queue[T]) Append(item T) *Queue[T] {
	q.items = append(q.items, item)
	return q
}

// First removes and returns the head item, false if the queue is empty.
func (q *Queue[T]) First() (T, bool) {
	if q.IsEmpty() {
		return q.zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = q.zero
	q.head++

	if q.head >= compactThreshold && q.head<<1 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	return result, true
}

// Package queue implements the unordered, FIFO work-transport substrate:
// multiple producers and consumers share a single mutex + condition
// variable guarding a plain slice. Enqueue order equals dequeue order.
package queue

import (
	"sync"

	"github.com/devkvlr/spp/internal/workitem"
)

// Queue is a thread-safe FIFO of Timestamped[T] values. The zero value is
// not usable; construct one with New.
type Queue[T any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []workitem.Timestamped[T]
	counter uint64
}

// New returns an empty, ready-to-use Queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue assigns the next sequential order to item, appends it, wakes one
// waiter and returns the order it was given. This is the only place a new
// order is minted; every other path into a Queue carries an order assigned
// upstream.
func (q *Queue[T]) Enqueue(item workitem.WorkItem[T]) uint64 {
	q.mu.Lock()
	order := q.counter
	q.counter++
	q.items = append(q.items, workitem.Timestamped[T]{Item: item, Order: order})
	q.mu.Unlock()
	q.cond.Signal()
	return order
}

// EnqueueTimestamped appends a pre-timestamped item verbatim, without
// touching the insert counter. Used to forward work from an upstream
// stage, and to re-enqueue an observed Stop for sibling replicas.
func (q *Queue[T]) EnqueueTimestamped(item workitem.Timestamped[T]) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.cond.Signal()
}

// WaitAndDequeue blocks until the queue is non-empty, then removes and
// returns the front element.
func (q *Queue[T]) WaitAndDequeue() workitem.Timestamped[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		q.cond.Wait()
	}

	item := q.items[0]
	q.items[0] = workitem.Timestamped[T]{}
	q.items = q.items[1:]
	return item
}

// Len reports the number of items currently buffered. Intended for
// diagnostics (e.g. the metrics heartbeat), not for control flow.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

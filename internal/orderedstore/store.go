// Package orderedstore implements the order-indexed work-transport
// substrate used by an ordered sink: items may be inserted out of order,
// but a single consumer always drains them by asking for a specific
// expected key. Adapted from the heap-based reordering buffer in
// dolthub's orderedparallel package, turned from a channel-push style
// into a blocking pull (WaitAndRemove) API.
package orderedstore

import (
	"container/heap"
	"sync"

	"github.com/devkvlr/spp/internal/workitem"
)

type entry[T any] struct {
	item workitem.Timestamped[T]
}

type minHeap[T any] []entry[T]

func (h minHeap[T]) Len() int            { return len(h) }
func (h minHeap[T]) Less(i, j int) bool  { return h[i].item.Order < h[j].item.Order }
func (h minHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap[T]) Push(x interface{}) { *h = append(*h, x.(entry[T])) }
func (h *minHeap[T]) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Store is a thread-safe, order-indexed map from uint64 to
// Timestamped[T]. Insertions may arrive in any order; WaitAndRemove
// blocks a single consumer until the exact key it asked for appears.
type Store[T any] struct {
	mu   sync.Mutex
	cond *sync.Cond
	heap minHeap[T]
}

// New returns an empty, ready-to-use Store.
func New[T any]() *Store[T] {
	s := &Store[T]{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Enqueue inserts item keyed by its own order and wakes every waiter so
// each can recheck whether the key it is blocked on has arrived.
func (s *Store[T]) Enqueue(item workitem.Timestamped[T]) {
	s.mu.Lock()
	heap.Push(&s.heap, entry[T]{item: item})
	s.mu.Unlock()
	s.cond.Broadcast()
}

// WaitAndRemove blocks until the store contains an item keyed by
// expected, then removes and returns it.
func (s *Store[T]) WaitAndRemove(expected uint64) workitem.Timestamped[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if len(s.heap) > 0 && s.heap[0].item.Order == expected {
			e := heap.Pop(&s.heap).(entry[T])
			return e.item
		}
		s.cond.Wait()
	}
}

// Len reports the number of items currently buffered. Intended for
// diagnostics, not control flow.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.heap)
}

package stage

import (
	"sync"

	"github.com/devkvlr/spp/internal/orderedstore"
	"github.com/devkvlr/spp/internal/queue"
	"github.com/devkvlr/spp/internal/workitem"
)

// Consumer processes one live item for side effect and returns a value to
// append to the sink's collected vector.
type Consumer[TIn, TCollected any] func(input TIn, order uint64) TCollected

// SinkFactory produces one Consumer. Invoked exactly once, since a sink
// is always single-threaded -- parallel sinks have no constructor to call
// in the first place (see DESIGN.md, Open Question 3).
type SinkFactory[TIn, TCollected any] func() Consumer[TIn, TCollected]

// Sink is the terminal stage: always one replica, selecting one of two
// worker loops based on its OrderingMode.
type Sink[TIn, TCollected any] struct {
	name     string
	mode     OrderingMode
	queue    *queue.Queue[TIn]
	store    *orderedstore.Store[TIn]
	consumer Consumer[TIn, TCollected]
	hooks    *Hooks

	mu        sync.Mutex
	collected []TCollected
}

// NewSink builds the terminal sink. mode selects Unordered or Ordered
// reassembly; factory is invoked once, on the building thread.
func NewSink[TIn, TCollected any](name string, mode OrderingMode, factory SinkFactory[TIn, TCollected], hooks *Hooks) *Sink[TIn, TCollected] {
	s := &Sink[TIn, TCollected]{
		name:     name,
		mode:     mode,
		consumer: factory(),
		hooks:    hooks,
	}
	switch mode {
	case Unordered:
		s.queue = queue.New[TIn]()
	case Ordered:
		s.store = orderedstore.New[TIn]()
	default:
		panic("stage: unknown ordering mode")
	}
	return s
}

// ProcessTimestamped enqueues an item into whichever substrate this
// sink's OrderingMode selects. This is the downstream endpoint the last
// upstream inout-stage calls; it handles Value, Dropped and Stop
// uniformly, exactly as an interior stage's ProcessTimestamped does.
func (s *Sink[TIn, TCollected]) ProcessTimestamped(item workitem.Timestamped[TIn]) {
	switch s.mode {
	case Unordered:
		s.queue.EnqueueTimestamped(item)
	case Ordered:
		s.store.Enqueue(item)
	}
}

// Monitors returns the sink's single not-yet-running worker loop.
func (s *Sink[TIn, TCollected]) Monitors() []func() {
	switch s.mode {
	case Ordered:
		return []func(){s.runOrdered}
	default:
		return []func(){s.runUnordered}
	}
}

func (s *Sink[TIn, TCollected]) runUnordered() {
	s.hooks.workerStart(s.name)
	defer s.hooks.workerStop(s.name)

	for {
		ts := s.queue.WaitAndDequeue()
		switch ts.Item.Kind {
		case workitem.KindValue:
			end := s.hooks.startSpan(s.name, ts.Order)
			collected := s.consumer(ts.Item.Value, ts.Order)
			end()
			s.hooks.onValue(s.name, ts.Order)
			s.mu.Lock()
			s.collected = append(s.collected, collected)
			s.mu.Unlock()
		case workitem.KindDropped:
			s.hooks.onDropped(s.name, ts.Order)
		case workitem.KindStop:
			return
		}
	}
}

func (s *Sink[TIn, TCollected]) runOrdered() {
	s.hooks.workerStart(s.name)
	defer s.hooks.workerStop(s.name)

	var nextItem uint64
	for {
		ts := s.store.WaitAndRemove(nextItem)
		switch ts.Item.Kind {
		case workitem.KindValue:
			if ts.Order != nextItem {
				panic("stage: ordered sink observed an out-of-sequence order; this is a library bug")
			}
			nextItem++
			end := s.hooks.startSpan(s.name, ts.Order)
			collected := s.consumer(ts.Item.Value, ts.Order)
			end()
			s.hooks.onValue(s.name, ts.Order)
			s.mu.Lock()
			s.collected = append(s.collected, collected)
			s.mu.Unlock()
		case workitem.KindDropped:
			s.hooks.onDropped(s.name, ts.Order)
			nextItem++
		case workitem.KindStop:
			return
		}
	}
}

// Collect returns the accumulated collected vector. Safe only after every
// worker has joined; the public API enforces this by always calling
// EndAndWait before Collect.
func (s *Sink[TIn, TCollected]) Collect() []TCollected {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collected
}

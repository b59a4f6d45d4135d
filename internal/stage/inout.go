package stage

import (
	"sync/atomic"

	"github.com/devkvlr/spp/internal/queue"
	"github.com/devkvlr/spp/internal/workitem"
)

// Transform is a per-item transformation: it either returns (out, true)
// to forward a value downstream, or (zero, false) to drop the item
// without failing the pipeline.
type Transform[TIn, TOut any] func(TIn) (TOut, bool)

// Factory produces one Transform per replica. It is invoked once per
// replica on the building thread; the produced Transform is then moved
// into its own worker goroutine. Factories exist instead of cloning a
// single instance because user state (an RNG, a scratch buffer) is often
// cheap to construct but not safely shared.
type Factory[TIn, TOut any] func() Transform[TIn, TOut]

// Downstream is the reference an inout-stage holds to the next stage's
// process_timestamped endpoint. A plain closure is Go's zero-cost
// equivalent of the Rust original's `Arc<Box<dyn PipelineBlock<...>>>`:
// it erases the concrete downstream stage type while remaining statically
// checked at the call site that constructs it.
type Downstream[T any] func(workitem.Timestamped[T])

// Inout is one interior or head link in the chain: TInput -> TOutput,
// replicated across R workers sharing one input queue.
type Inout[TIn, TOut any] struct {
	name       string
	input      *queue.Queue[TIn]
	replicas   int
	alive      int64
	factory    Factory[TIn, TOut]
	downstream Downstream[TOut]
	hooks      *Hooks
}

// NewInout builds an inout-stage with the given replica count. replicas
// must be >= 1 (=1 for a sequential stage).
func NewInout[TIn, TOut any](name string, replicas int, factory Factory[TIn, TOut], downstream Downstream[TOut], hooks *Hooks) *Inout[TIn, TOut] {
	if replicas < 1 {
		panic("stage: replicas must be >= 1")
	}
	return &Inout[TIn, TOut]{
		name:       name,
		input:      queue.New[TIn](),
		replicas:   replicas,
		alive:      int64(replicas),
		factory:    factory,
		downstream: downstream,
		hooks:      hooks,
	}
}

// Process assigns a fresh order to v and enqueues it. Used only at the
// pipeline's public entry point (this stage is the head).
func (s *Inout[TIn, TOut]) Process(v TIn) uint64 {
	return s.input.Enqueue(workitem.NewValue(v))
}

// ProcessTimestamped enqueues an already-timestamped item, preserving its
// order. Used by the upstream stage that feeds this one.
func (s *Inout[TIn, TOut]) ProcessTimestamped(item workitem.Timestamped[TIn]) {
	s.input.EnqueueTimestamped(item)
}

// SendStop assigns a fresh order to a Stop token and enqueues it. Only
// ever called on the head stage, by Pipeline.End. Using the counter-based
// Enqueue (not EnqueueTimestamped) means the initial Stop lands at
// exactly the next sequential order -- the slot immediately after the
// last live item -- which is what lets an ordered sink's cursor collect
// it without any special-casing once it has consumed every item ahead of it.
func (s *Inout[TIn, TOut]) SendStop() {
	s.input.Enqueue(workitem.NewStop[TIn]())
}

// QueueDepth reports the head stage's current input queue length, for
// the optional metrics heartbeat.
func (s *Inout[TIn, TOut]) QueueDepth() int {
	return s.input.Len()
}

// Monitors returns one not-yet-running worker loop per replica. The
// factory is invoked here, once per replica, on the building thread --
// not lazily inside the worker goroutine -- exactly as the Rust original
// calls it while constructing its MonitorLoop closures. A panicking
// factory therefore aborts the remaining replicas of this call and
// unwinds out of Stage before any goroutine is spawned and before Start
// is reached, which is
// the "tear down and propagate" resolution to the factory-panic Open
// Question (DESIGN.md).
func (s *Inout[TIn, TOut]) Monitors() []func() {
	fns := make([]func(), s.replicas)
	for i := range fns {
		transform := s.factory()
		fns[i] = func() { s.runWorker(transform) }
	}
	return fns
}

func (s *Inout[TIn, TOut]) runWorker(transform Transform[TIn, TOut]) {
	s.hooks.workerStart(s.name)
	defer s.hooks.workerStop(s.name)

	for {
		ts := s.input.WaitAndDequeue()

		switch ts.Item.Kind {
		case workitem.KindValue:
			end := s.hooks.startSpan(s.name, ts.Order)
			out, ok := transform(ts.Item.Value)
			end()
			if ok {
				s.hooks.onValue(s.name, ts.Order)
				s.downstream(workitem.Timestamped[TOut]{Item: workitem.NewValue(out), Order: ts.Order})
			} else {
				s.hooks.onDropped(s.name, ts.Order)
				s.downstream(workitem.Timestamped[TOut]{Item: workitem.NewDropped[TOut](), Order: ts.Order})
			}

		case workitem.KindDropped:
			s.hooks.onDropped(s.name, ts.Order)
			s.downstream(workitem.Timestamped[TOut]{Item: workitem.NewDropped[TOut](), Order: ts.Order})

		case workitem.KindStop:
			remaining := atomic.AddInt64(&s.alive, -1)
			if remaining == 0 {
				s.downstream(workitem.Timestamped[TOut]{Item: workitem.NewStop[TOut](), Order: ts.Order})
			}
			// Wake any sibling replica still blocked on the queue.
			s.input.EnqueueTimestamped(ts)
			return
		}
	}
}

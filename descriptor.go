package spp

import (
	"github.com/devkvlr/spp/internal/stage"
	"github.com/devkvlr/spp/internal/workitem"
)

// Descriptor is an unstarted pipeline: the result of wrapping a sink in
// zero or more stages, leaves-first. It carries no goroutines yet --
// Start is what turns a Descriptor into a running Pipeline. A Descriptor
// is only useful passed straight into Start or wrapped by another Stage
// call; it has no other exported surface.
type Descriptor[TIn, TCollected any] struct {
	processTS func(workitem.Timestamped[TIn])
	monitors  []monitorEntry
	collect   func() []TCollected

	// post and sendStop are nil unless this Descriptor's outermost link
	// is a Stage (not a bare Sink). A Descriptor built from Sink alone
	// has nothing to post to, which Start leaves for Post/End to report
	// as ErrNoHeadStage rather than rejecting at construction time.
	post       func(TIn) uint64
	sendStop   func()
	queueDepth func() int
}

// Parallel is sugar for a stage's replica count: spp.Stage(name,
// spp.Parallel(4), ...) reads the same as the sequential default of
// passing 1 directly.
func Parallel(n int) int { return n }

// monitorEntry pairs a not-yet-running worker loop with the stage name it
// belongs to, so Start can label a recovered panic with the stage it came
// from.
type monitorEntry struct {
	stage string
	run   func()
}

func monitorEntries(name string, fns []func()) []monitorEntry {
	entries := make([]monitorEntry, len(fns))
	for i, fn := range fns {
		entries[i] = monitorEntry{stage: name, run: fn}
	}
	return entries
}

// Sink builds the terminal stage of a pipeline. mode selects submission-
// order reassembly (Ordered) or arrival-order collection (Unordered).
// factory is invoked once, synchronously, to produce the single consumer
// function this sink will ever use -- a sink is always single-threaded,
// so there is no replica count to configure.
func Sink[TIn, TCollected any](name string, mode OrderingMode, factory func() func(TIn, uint64) TCollected, hooks *Hooks) Descriptor[TIn, TCollected] {
	stageFactory := func() stage.Consumer[TIn, TCollected] {
		return stage.Consumer[TIn, TCollected](factory())
	}
	s := stage.NewSink[TIn, TCollected](name, stage.OrderingMode(mode), stageFactory, toStageHooks(hooks))
	return Descriptor[TIn, TCollected]{
		processTS: s.ProcessTimestamped,
		monitors:  monitorEntries(name, s.Monitors()),
		collect:   s.Collect,
	}
}

// Stage wraps downstream in a new inout-stage: TIn goes in, TOut comes
// out of factory's transform function and flows into downstream.
// replicas is the worker count for this stage (spp.Parallel(n) or a
// literal 1 for sequential). The returned Descriptor's type parameter
// TIn replaces downstream's TIn, letting the chain be built head-last,
// sink-first.
func Stage[TIn, TOut, TCollected any](name string, replicas int, factory func() func(TIn) (TOut, bool), downstream Descriptor[TOut, TCollected], hooks *Hooks) Descriptor[TIn, TCollected] {
	stageFactory := func() stage.Transform[TIn, TOut] {
		return stage.Transform[TIn, TOut](factory())
	}
	s := stage.NewInout[TIn, TOut](name, replicas, stageFactory, downstream.processTS, toStageHooks(hooks))
	monitors := make([]monitorEntry, 0, len(downstream.monitors)+replicas)
	monitors = append(monitors, downstream.monitors...)
	monitors = append(monitors, monitorEntries(name, s.Monitors())...)
	return Descriptor[TIn, TCollected]{
		processTS:  s.ProcessTimestamped,
		monitors:   monitors,
		collect:    downstream.collect,
		post:       s.Process,
		sendStop:   s.SendStop,
		queueDepth: s.QueueDepth,
	}
}

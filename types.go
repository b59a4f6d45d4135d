package spp

import "github.com/devkvlr/spp/internal/stage"

// OrderingMode selects a sink's reassembly discipline.
type OrderingMode int

const (
	// Unordered appends collected values in arrival order.
	Unordered OrderingMode = OrderingMode(stage.Unordered)
	// Ordered appends collected values in submission order.
	Ordered OrderingMode = OrderingMode(stage.Ordered)
)

func (m OrderingMode) String() string { return stage.OrderingMode(m).String() }

// Hooks carries optional ambient instrumentation for a single stage: the
// metrics and tracing packages each build one of these (see
// metrics.Hooks, tracing.Hooks and ComposeHooks), and Stage/Sink thread
// it through to the stage's worker loop. Every field may be left nil.
type Hooks struct {
	OnWorkerStart func(stageName string)
	OnWorkerStop  func(stageName string)
	OnValue       func(stageName string, order uint64)
	OnDropped     func(stageName string, order uint64)
	StartSpan     func(stageName string, order uint64) func()
}

func toStageHooks(h *Hooks) *stage.Hooks {
	return (*stage.Hooks)(h)
}

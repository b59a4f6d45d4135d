package stage

// OrderingMode selects one of the sink's two worker loops. It is only
// meaningful on the terminal in-stage; interior inout-stages ignore it.
type OrderingMode int

const (
	// Unordered appends collected values in arrival order.
	Unordered OrderingMode = iota
	// Ordered appends collected values in submission order, reassembling
	// out-of-order upstream output via the ordered store.
	Ordered
)

func (m OrderingMode) String() string {
	switch m {
	case Unordered:
		return "unordered"
	case Ordered:
		return "ordered"
	default:
		return "unknown"
	}
}

// Hooks carries the library's optional ambient instrumentation: metrics
// and tracing are wired in through these function fields rather than by
// importing the metrics/tracing packages directly, so the stage package
// has no dependency on either. Every field may be nil; callers must
// nil-check before invoking.
type Hooks struct {
	// OnWorkerStart/OnWorkerStop fire once per replica goroutine.
	OnWorkerStart func(stageName string)
	OnWorkerStop  func(stageName string)

	// OnValue/OnDropped fire once per item a worker finishes handling.
	OnValue   func(stageName string, order uint64)
	OnDropped func(stageName string, order uint64)

	// StartSpan, if set, is called before a transform/consumer invocation
	// and must return a function that ends the span.
	StartSpan func(stageName string, order uint64) func()
}

func (h *Hooks) workerStart(name string) {
	if h != nil && h.OnWorkerStart != nil {
		h.OnWorkerStart(name)
	}
}

func (h *Hooks) workerStop(name string) {
	if h != nil && h.OnWorkerStop != nil {
		h.OnWorkerStop(name)
	}
}

func (h *Hooks) onValue(name string, order uint64) {
	if h != nil && h.OnValue != nil {
		h.OnValue(name, order)
	}
}

func (h *Hooks) onDropped(name string, order uint64) {
	if h != nil && h.OnDropped != nil {
		h.OnDropped(name, order)
	}
}

func (h *Hooks) startSpan(name string, order uint64) func() {
	if h != nil && h.StartSpan != nil {
		return h.StartSpan(name, order)
	}
	return func() {}
}

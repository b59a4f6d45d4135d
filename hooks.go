package spp

// ComposeHooks merges any number of Hooks sets (e.g. metrics.Hooks and
// tracing.Hooks attached to the same stage) into one, calling every
// non-nil callback from every input in order. Later StartSpan end
// functions are called in the reverse order their start functions were
// called, the usual span-nesting discipline.
func ComposeHooks(hs ...*Hooks) *Hooks {
	nonNil := make([]*Hooks, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			nonNil = append(nonNil, h)
		}
	}
	if len(nonNil) == 0 {
		return nil
	}
	if len(nonNil) == 1 {
		return nonNil[0]
	}

	merged := &Hooks{
		OnWorkerStart: func(name string) {
			for _, h := range nonNil {
				if h.OnWorkerStart != nil {
					h.OnWorkerStart(name)
				}
			}
		},
		OnWorkerStop: func(name string) {
			for _, h := range nonNil {
				if h.OnWorkerStop != nil {
					h.OnWorkerStop(name)
				}
			}
		},
		OnValue: func(name string, order uint64) {
			for _, h := range nonNil {
				if h.OnValue != nil {
					h.OnValue(name, order)
				}
			}
		},
		OnDropped: func(name string, order uint64) {
			for _, h := range nonNil {
				if h.OnDropped != nil {
					h.OnDropped(name, order)
				}
			}
		},
		StartSpan: func(name string, order uint64) func() {
			ends := make([]func(), 0, len(nonNil))
			for _, h := range nonNil {
				if h.StartSpan != nil {
					ends = append(ends, h.StartSpan(name, order))
				}
			}
			return func() {
				for i := len(ends) - 1; i >= 0; i-- {
					ends[i]()
				}
			}
		},
	}
	return merged
}

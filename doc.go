// Package spp implements a staged parallel pipeline: a fixed chain of
// stages, each replicated across a configurable number of worker
// goroutines, through which values of one type flow in and are
// transformed, filtered, and finally collected as values of another
// type.
//
// A pipeline is assembled leaves-first with Sink and Stage, then handed
// to Start:
//
//	desc := spp.Sink[int, int]("collect", spp.Ordered, func() func(int, uint64) int {
//		return func(v int, _ uint64) int { return v }
//	}, nil)
//	desc = spp.Stage[int, int, int]("double", spp.Parallel(4), func() func(int) (int, bool) {
//		return func(v int) (int, bool) { return v * 2, true }
//	}, desc, nil)
//	p := spp.Start(desc)
//
//	for i := 0; i < 100; i++ {
//		_ = p.Post(i)
//	}
//	out, err := p.Collect()
//
// Every stage but the sink may run any number of replicas; an Ordered
// sink reassembles their output back into submission order regardless of
// how the replicas finished relative to one another. There is no
// backpressure, no work-stealing between replicas, and no way to insert
// or remove a stage once Start has been called.
package spp

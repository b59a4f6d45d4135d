// Package tracing wraps an opentracing.Tracer for injection into a
// pipeline, adapted from a per-service global tracer pool into a
// per-pipeline handle since a pipeline has no service boundary of its own
// to hang a global pool off of.
package tracing

import (
	"io"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"

	"github.com/devkvlr/spp"
)

// Tracer is a started opentracing.Tracer plus the io.Closer its transport
// needs flushed on shutdown.
type Tracer struct {
	mu     sync.Mutex
	tr     opentracing.Tracer
	closer io.Closer
}

// New builds a Jaeger-backed Tracer for serviceName, sampling every span
// (there is no deployment-scale sampling concern for an in-process
// pipeline's own spans).
func New(serviceName string) (*Tracer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Sampler = &jaegercfg.SamplerConfig{
		Type:  jaeger.SamplerTypeConst,
		Param: 1,
	}
	cfg.ServiceName = serviceName

	tr, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, err
	}
	return &Tracer{tr: tr, closer: closer}, nil
}

// Wrap builds a Tracer around an already-constructed opentracing.Tracer,
// for tests and for callers who manage their own tracer lifecycle (e.g.
// a host service that already has one per process).
func Wrap(tr opentracing.Tracer) *Tracer {
	return &Tracer{tr: tr, closer: noopCloser{}}
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// Close flushes any buffered spans. Safe to call once, at pipeline
// shutdown.
func (t *Tracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var err error
	if cErr := t.closer.Close(); cErr != nil {
		err = multierror.Append(err, cErr)
	}
	return err
}

// Hooks starts one span per transform/consume invocation, named after the
// stage and tagged with the item's order (spp.order) so spans for a single
// item can be correlated across a stage chain. Each span is a new root
// span; it is not linked to a parent span.
func Hooks(t *Tracer) *spp.Hooks {
	return &spp.Hooks{
		StartSpan: func(stageName string, order uint64) func() {
			span := t.tr.StartSpan(stageName)
			span.SetTag("spp.order", order)
			return span.Finish
		},
	}
}

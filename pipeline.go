package spp

import (
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Pipeline is a started pipeline handle: the only exported stateful type
// of this package. Every monitor goroutine has already been spawned by
// the time Start returns.
type Pipeline[TIn, TCollected any] struct {
	post       func(TIn) uint64
	sendStop   func()
	collect    func() []TCollected
	queueDepth func() int

	cfg *config

	wg            sync.WaitGroup
	heartbeatDone chan struct{}

	mu       sync.Mutex
	ended    bool
	joined   bool
	joinErr  error
	panics   *multierror.Error
	panicsMu sync.Mutex
}

// Start spawns one goroutine per replica across every stage of d and
// returns the running handle. Construction never fails in the ordinary
// sense -- there is no error return -- because the only way building a
// pipeline can go wrong, a panicking stage factory, has already unwound
// through Sink/Stage before Start is ever reached.
func Start[TIn, TCollected any](d Descriptor[TIn, TCollected], opts ...Option) *Pipeline[TIn, TCollected] {
	cfg := newConfig(opts)

	p := &Pipeline[TIn, TCollected]{
		post:       d.post,
		sendStop:   d.sendStop,
		collect:    d.collect,
		queueDepth: d.queueDepth,
		cfg:        cfg,
	}

	p.wg.Add(len(d.monitors))
	for _, entry := range d.monitors {
		go p.runMonitor(entry)
	}

	if cfg.heartbeat > 0 && p.queueDepth != nil {
		p.heartbeatDone = make(chan struct{})
		go p.runHeartbeat()
	}

	// The finalizer only runs once p is unreachable. Every worker goroutine
	// spawned above holds p until it exits, and workers exit only after End,
	// so this finalizer does not stop the workers of a pipeline dropped
	// without Close/EndAndWait/Collect: those goroutines keep running.
	runtime.SetFinalizer(p, func(p *Pipeline[TIn, TCollected]) {
		_ = p.EndAndWait()
	})

	return p
}

// runMonitor runs one stage's worker loop, recovering and recording a
// panic instead of letting it bring down the whole process -- mirroring
// the teacher pipeline's per-stage error channel, except the failure mode
// here is a panic rather than a returned error since stage.Transform and
// stage.Consumer have no error return of their own.
func (p *Pipeline[TIn, TCollected]) runMonitor(entry monitorEntry) {
	defer p.wg.Done()
	log := p.cfg.logger.WithField("stage", entry.stage)
	defer func() {
		if r := recover(); r != nil {
			p.cfg.logger.WithField("stage", entry.stage).WithField("panic", r).Error("spp: worker panic")
			p.panicsMu.Lock()
			p.panics = multierror.Append(p.panics, wrapWorkerPanic(entry.stage, r))
			p.panicsMu.Unlock()
			return
		}
		log.Debug("spp: worker stopped after observing stop")
	}()
	log.Debug("spp: worker started")
	entry.run()
}

func (p *Pipeline[TIn, TCollected]) runHeartbeat() {
	for {
		select {
		case <-p.cfg.clk.After(p.cfg.heartbeat):
			p.cfg.onHeartbeat(p.queueDepth())
		case <-p.heartbeatDone:
			return
		}
	}
}

// Post submits v to the head stage, assigning it the next sequential
// order. Returns ErrStreamEnded if End/EndAndWait has already been
// called, or ErrNoHeadStage if this Pipeline was built from a bare Sink.
func (p *Pipeline[TIn, TCollected]) Post(v TIn) error {
	if p.post == nil {
		return ErrNoHeadStage
	}
	p.mu.Lock()
	ended := p.ended
	p.mu.Unlock()
	if ended {
		return ErrStreamEnded
	}
	p.post(v)
	return nil
}

// End signals the head stage to stop accepting work and propagate a Stop
// downstream once every replica has observed it. It does not block for
// that propagation to finish; use EndAndWait for that. Calling End more
// than once is a no-op.
func (p *Pipeline[TIn, TCollected]) End() error {
	if p.sendStop == nil {
		return ErrNoHeadStage
	}
	p.mu.Lock()
	alreadyEnded := p.ended
	p.ended = true
	p.mu.Unlock()
	if !alreadyEnded {
		p.sendStop()
	}
	return nil
}

// EndAndWait calls End, then blocks until every worker goroutine across
// every stage has exited, aggregating any recovered worker panics into a
// single error via multierror. Safe to call more than once: the second
// and subsequent calls observe the same join and return the same error
// without re-running End's side effects.
func (p *Pipeline[TIn, TCollected]) EndAndWait() error {
	if err := p.End(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.joined {
		err := p.joinErr
		p.mu.Unlock()
		return err
	}
	p.mu.Unlock()

	p.wg.Wait()
	if p.heartbeatDone != nil {
		close(p.heartbeatDone)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.joined {
		p.joined = true
		p.panicsMu.Lock()
		if p.panics != nil {
			p.joinErr = p.panics.ErrorOrNil()
		}
		p.panicsMu.Unlock()
	}
	return p.joinErr
}

// Collect blocks until the pipeline has fully drained (calling
// EndAndWait if it has not already ended) and returns the sink's
// accumulated values, in submission order for an Ordered sink or arrival
// order for an Unordered one.
func (p *Pipeline[TIn, TCollected]) Collect() ([]TCollected, error) {
	if err := p.EndAndWait(); err != nil {
		return nil, err
	}
	return p.collect(), nil
}

// Close implements io.Closer as the idiomatic substitute for a
// deterministic destructor: it calls EndAndWait and logs any error
// rather than returning it, so a Pipeline can be used with defer.
func (p *Pipeline[TIn, TCollected]) Close() error {
	if err := p.EndAndWait(); err != nil {
		p.cfg.logger.WithError(err).Error("spp: pipeline closed with worker errors")
	}
	return nil
}

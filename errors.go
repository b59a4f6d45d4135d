package spp

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ErrStreamEnded is returned by Post once End or EndAndWait has already
// been called: the head stage no longer accepts new work.
var ErrStreamEnded = xerrors.New("spp: stream has ended")

// ErrNoHeadStage is returned by Post, End and EndAndWait when the
// Descriptor passed to Start was built from a bare Sink with no Stage
// wrapping it, so there is nothing to post to or send a stop through.
var ErrNoHeadStage = xerrors.New("spp: pipeline has no head stage")

// WorkerPanicError wraps a recovered panic from a single worker goroutine,
// identifying which stage it came from. EndAndWait aggregates one or more
// of these into a multierror.Error.
type WorkerPanicError struct {
	Stage string
	Value interface{}
}

func (e *WorkerPanicError) Error() string {
	return fmt.Sprintf("worker panic in stage %q: %v", e.Stage, e.Value)
}

func wrapWorkerPanic(stage string, recovered interface{}) error {
	return xerrors.Errorf("spp: %w", &WorkerPanicError{Stage: stage, Value: recovered})
}

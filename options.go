package spp

import (
	"io"
	"time"

	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
)

type config struct {
	logger      *logrus.Entry
	clk         clock.Clock
	heartbeat   time.Duration
	onHeartbeat func(depth int)
}

func newConfig(opts []Option) *config {
	cfg := &config{
		logger: logrus.NewEntry(discardLogger()),
		clk:    clock.WallClock,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Option configures a Pipeline at Start time.
type Option func(*config)

// WithLogger attaches a logger for stage lifecycle events (worker
// start/stop, stop-protocol completion, worker panics). Without this
// option, log output is discarded.
func WithLogger(logger *logrus.Entry) Option {
	return func(c *config) { c.logger = logger }
}

// WithClock drives the optional heartbeat monitor with clk instead of the
// wall clock, letting tests advance time deterministically with a fake
// clock.Clock implementation.
func WithClock(clk clock.Clock) Option {
	return func(c *config) { c.clk = clk }
}

// WithHeartbeat starts a periodic goroutine, ticking every interval, that
// reports the head stage's queue depth to onDepth. It exits when the
// pipeline's EndAndWait returns.
func WithHeartbeat(interval time.Duration, onDepth func(depth int)) Option {
	return func(c *config) {
		c.heartbeat = interval
		c.onHeartbeat = onDepth
	}
}

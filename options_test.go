package spp_test

import (
	"sync"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	gc "gopkg.in/check.v1"

	"github.com/devkvlr/spp"
)

var _ = gc.Suite(new(OptionsTestSuite))

type OptionsTestSuite struct{}

// WithHeartbeat reports queue depth on an injected clock's schedule, not a
// wall-clock timer, so the test can advance time deterministically instead
// of sleeping and hoping.
func (s *OptionsTestSuite) TestWithHeartbeatReportsQueueDepth(c *gc.C) {
	clk := testclock.NewClock(time.Now())

	var mu sync.Mutex
	var depths []int
	onDepth := func(depth int) {
		mu.Lock()
		depths = append(depths, depth)
		mu.Unlock()
	}

	desc := spp.Sink[int, int]("collect", spp.Ordered, func() func(int, uint64) int {
		return func(v int, _ uint64) int { return v }
	}, nil)
	desc = spp.Stage[int, int, int]("identity", 1, func() func(int) (int, bool) {
		return func(v int) (int, bool) { return v, true }
	}, desc, nil)

	p := spp.Start(desc, spp.WithClock(clk), spp.WithHeartbeat(time.Second, onDepth))

	for i := 0; i < 3; i++ {
		c.Assert(p.Post(i), gc.IsNil)
	}

	for i := 0; i < 5; i++ {
		clk.Advance(time.Second)
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	reported := len(depths)
	mu.Unlock()
	c.Assert(reported > 0, gc.Equals, true)

	_, err := p.Collect()
	c.Assert(err, gc.IsNil)
}

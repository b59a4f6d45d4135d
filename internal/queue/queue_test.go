package queue_test

import (
	"sync"
	"testing"
	"time"

	"github.com/devkvlr/spp/internal/queue"
	"github.com/devkvlr/spp/internal/workitem"
	gc "gopkg.in/check.v1"
)

func Test(t *testing.T) { gc.TestingT(t) }

var _ = gc.Suite(new(QueueTestSuite))

type QueueTestSuite struct{}

func (s *QueueTestSuite) TestFIFOOrder(c *gc.C) {
	q := queue.New[int]()

	var orders []uint64
	for i := 0; i < 10; i++ {
		orders = append(orders, q.Enqueue(workitem.NewValue(i)))
	}
	c.Assert(orders, gc.DeepEquals, []uint64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	for i := 0; i < 10; i++ {
		item := q.WaitAndDequeue()
		c.Assert(item.Order, gc.Equals, uint64(i))
		c.Assert(item.Item.Value, gc.Equals, i)
	}
}

func (s *QueueTestSuite) TestEnqueueTimestampedPreservesOrder(c *gc.C) {
	q := queue.New[string]()
	q.EnqueueTimestamped(workitem.Timestamped[string]{Item: workitem.NewValue("x"), Order: 99})
	item := q.WaitAndDequeue()
	c.Assert(item.Order, gc.Equals, uint64(99))
}

func (s *QueueTestSuite) TestWaitAndDequeueBlocksUntilEnqueue(c *gc.C) {
	q := queue.New[int]()
	done := make(chan workitem.Timestamped[int], 1)

	go func() {
		done <- q.WaitAndDequeue()
	}()

	select {
	case <-done:
		c.Fatal("WaitAndDequeue returned before anything was enqueued")
	case <-time.After(50 * time.Millisecond):
	}

	q.Enqueue(workitem.NewValue(7))

	select {
	case item := <-done:
		c.Assert(item.Item.Value, gc.Equals, 7)
	case <-time.After(5 * time.Second):
		c.Fatal("timed out waiting for WaitAndDequeue to unblock")
	}
}

func (s *QueueTestSuite) TestConcurrentProducersPreserveDequeueFIFO(c *gc.C) {
	q := queue.New[int]()
	const producers = 8
	const perProducer = 500

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(workitem.NewValue(i))
			}
		}()
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	for i := 0; i < producers*perProducer; i++ {
		item := q.WaitAndDequeue()
		c.Assert(item.Order, gc.Equals, uint64(i))
		c.Assert(seen[item.Order], gc.Equals, false)
		seen[item.Order] = true
	}
	c.Assert(q.Len(), gc.Equals, 0)
}

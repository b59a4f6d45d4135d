package orderedstore_test

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/devkvlr/spp/internal/orderedstore"
	"github.com/devkvlr/spp/internal/workitem"
	gc "gopkg.in/check.v1"
)

func Test(t *testing.T) { gc.TestingT(t) }

var _ = gc.Suite(new(StoreTestSuite))

type StoreTestSuite struct{}

func (s *StoreTestSuite) TestOutOfOrderInsertionInOrderRemoval(c *gc.C) {
	store := orderedstore.New[int]()

	insertOrder := []int{4, 1, 0, 3, 2}
	for _, order := range insertOrder {
		store.Enqueue(workitem.Timestamped[int]{Item: workitem.NewValue(order * 10), Order: uint64(order)})
	}

	for expected := 0; expected < 5; expected++ {
		item := store.WaitAndRemove(uint64(expected))
		c.Assert(item.Order, gc.Equals, uint64(expected))
		c.Assert(item.Item.Value, gc.Equals, expected*10)
	}
	c.Assert(store.Len(), gc.Equals, 0)
}

func (s *StoreTestSuite) TestWaitAndRemoveBlocksForMissingKey(c *gc.C) {
	store := orderedstore.New[int]()
	store.Enqueue(workitem.Timestamped[int]{Item: workitem.NewValue(1), Order: 1})

	done := make(chan workitem.Timestamped[int], 1)
	go func() {
		done <- store.WaitAndRemove(0)
	}()

	select {
	case <-done:
		c.Fatal("WaitAndRemove returned before key 0 was inserted")
	case <-time.After(50 * time.Millisecond):
	}

	store.Enqueue(workitem.Timestamped[int]{Item: workitem.NewValue(0), Order: 0})

	select {
	case item := <-done:
		c.Assert(item.Order, gc.Equals, uint64(0))
	case <-time.After(5 * time.Second):
		c.Fatal("timed out waiting for WaitAndRemove to unblock")
	}
}

func (s *StoreTestSuite) TestConcurrentOutOfOrderInsertionsReassembleSequentially(c *gc.C) {
	store := orderedstore.New[int]()
	const n = 2000

	order := rand.New(rand.NewSource(1)).Perm(n)

	var wg sync.WaitGroup
	for _, o := range order {
		wg.Add(1)
		go func(o int) {
			defer wg.Done()
			store.Enqueue(workitem.Timestamped[int]{Item: workitem.NewValue(o), Order: uint64(o)})
		}(o)
	}
	wg.Wait()

	for expected := 0; expected < n; expected++ {
		item := store.WaitAndRemove(uint64(expected))
		c.Assert(item.Order, gc.Equals, uint64(expected))
	}
}

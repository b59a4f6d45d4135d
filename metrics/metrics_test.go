package metrics_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/devkvlr/spp/internal/mocks"
	"github.com/devkvlr/spp/metrics"
)

func Test(t *testing.T) { gc.TestingT(t) }

var _ = gc.Suite(new(MetricsTestSuite))

type MetricsTestSuite struct{}

func (s *MetricsTestSuite) TestHooksDelegateToRecorder(c *gc.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()
	rec := mocks.NewMockRecorder(ctrl)

	rec.EXPECT().WorkerStarted("double")
	rec.EXPECT().WorkerStopped("double")
	rec.EXPECT().ItemDropped("double")
	rec.EXPECT().ItemProcessed("double", gomock.Any())

	hooks := metrics.Hooks(rec)
	hooks.OnWorkerStart("double")
	hooks.OnDropped("double", 0)
	end := hooks.StartSpan("double", 0)
	time.Sleep(time.Millisecond)
	end()
	hooks.OnWorkerStop("double")
}

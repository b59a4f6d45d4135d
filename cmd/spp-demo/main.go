package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/devkvlr/spp"
)

var (
	appName = "spp-demo"
	appSha  = "populated-at-link-time"
	logger  *logrus.Entry
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger = rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	if err := makeApp().Run(os.Args); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		_ = os.Stderr.Sync()
		os.Exit(1)
	}
}

func makeApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = appSha
	app.Usage = "run the textbook spp pipeline shapes against a synthetic workload"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:   "count",
			Value:  20,
			EnvVar: "SPP_DEMO_COUNT",
			Usage:  "number of integers to post",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "doubling",
			Usage:  "two parallel x*2 stages feeding an ordered sink",
			Action: runDoubling,
		},
		{
			Name:   "filter",
			Usage:  "drop multiples of 5, feeding an ordered sink",
			Action: runFilter,
		},
		{
			Name:   "fanout",
			Usage:  "a single parallel identity stage feeding an unordered sink",
			Action: runFanout,
		},
	}
	return app
}

func runDoubling(c *cli.Context) error {
	desc := spp.Sink[int, int]("collect", spp.Ordered, func() func(int, uint64) int {
		return func(v int, _ uint64) int { return v }
	}, nil)
	desc = spp.Stage[int, int, int]("double2", spp.Parallel(4), doublerFactory, desc, nil)
	desc = spp.Stage[int, int, int]("double1", spp.Parallel(4), doublerFactory, desc, nil)

	return runAndReport(c, desc)
}

func runFilter(c *cli.Context) error {
	desc := spp.Sink[int, int]("collect", spp.Ordered, func() func(int, uint64) int {
		return func(v int, _ uint64) int { return v }
	}, nil)
	desc = spp.Stage[int, int, int]("filter", spp.Parallel(8), func() func(int) (int, bool) {
		return func(v int) (int, bool) {
			if v%5 == 0 {
				return 0, false
			}
			return v, true
		}
	}, desc, nil)

	return runAndReport(c, desc)
}

func runFanout(c *cli.Context) error {
	desc := spp.Sink[int, int]("collect", spp.Unordered, func() func(int, uint64) int {
		return func(v int, _ uint64) int { return v }
	}, nil)
	desc = spp.Stage[int, int, int]("identity", spp.Parallel(8), func() func(int) (int, bool) {
		return func(v int) (int, bool) { return v, true }
	}, desc, nil)

	return runAndReport(c, desc)
}

func doublerFactory() func(int) (int, bool) {
	return func(v int) (int, bool) { return v * 2, true }
}

func runAndReport(c *cli.Context, desc spp.Descriptor[int, int]) error {
	runID := uuid.New()
	count := c.Int("count")
	log := logger.WithField("run", runID)

	p := spp.Start(desc)
	for i := 0; i < count; i++ {
		if err := p.Post(i); err != nil {
			return err
		}
	}

	collected, err := p.Collect()
	if err != nil {
		return err
	}

	log.WithField("items", len(collected)).Info("pipeline drained")
	fmt.Println(collected)
	return nil
}

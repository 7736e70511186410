// Package driver feeds host ticks into the timer.
package driver

import (
	"fmt"
	"io"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// Ticker is anything advanced by periodic ticks.
type Ticker interface {
	Tick()
}

// Driver wraps a gocron scheduler that calls Tick at a fixed cadence.
// Ticks never overlap: a late tick is rescheduled instead of run concurrently.
type Driver struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	logger    logrus.FieldLogger
}

// New creates a driver for target. Non-positive intervals mean one second.
func New(target Ticker, interval time.Duration, logger logrus.FieldLogger) (*Driver, error) {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(target.Tick),
		gocron.WithName("timer-tick"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("create tick job: %w", err)
	}

	return &Driver{
		scheduler: s,
		interval:  interval,
		logger:    logger,
	}, nil
}

// Interval returns the tick cadence.
func (driver *Driver) Interval() time.Duration {
	return driver.interval
}

// Start begins ticking.
func (driver *Driver) Start() {
	driver.logger.WithField("interval", driver.interval).Debug("starting tick driver")
	driver.scheduler.Start()
}

// Stop halts ticking and waits for an in-flight tick to finish.
func (driver *Driver) Stop() error {
	driver.logger.Debug("stopping tick driver")
	if err := driver.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("shutdown tick driver: %w", err)
	}
	return nil
}

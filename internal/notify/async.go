package notify

import (
	"fmt"
	"io"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"pomodoro/internal/core/timekeeper"
)

// Async runs a notifier on a goroutine pool so callers never wait for it.
type Async struct {
	inner  timekeeper.Notifier
	pool   *ants.Pool
	logger logrus.FieldLogger
}

// ErrBusy is returned when every worker is still delivering an earlier
// notification. The new one is dropped.
var ErrBusy = ants.ErrPoolOverload

// NewAsync wraps inner with a pool of at most size workers. Notify never
// waits for a free worker.
func NewAsync(inner timekeeper.Notifier, size int, logger logrus.FieldLogger) (*Async, error) {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	pool, err := ants.NewPool(size, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create notification pool: %w", err)
	}
	return &Async{inner: inner, pool: pool, logger: logger}, nil
}

// Notify schedules delivery. Only scheduling failures are returned.
func (async *Async) Notify(phase timekeeper.Phase) error {
	err := async.pool.Submit(func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				async.logger.WithField("phase", phase).Errorf("notifier panic: %v", recovered)
			}
		}()
		if err := async.inner.Notify(phase); err != nil {
			async.logger.WithError(err).WithField("phase", phase).Warn("deliver notification")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule notification: %w", err)
	}
	return nil
}

// Release stops accepting notifications and frees the pool.
func (async *Async) Release() {
	async.pool.Release()
}

package storage

import (
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/metrics"
)

// ErrClosed is returned by WriteBehind.Save after Close.
var ErrClosed = errors.New("state store closed")

// WriteBehind hands saves to a background writer so callers never wait on I/O.
// Only the newest pending record is written; older ones are superseded.
type WriteBehind struct {
	store    timekeeper.Store
	logger   logrus.FieldLogger
	recorder metrics.Recorder

	mu      sync.Mutex
	pending *timekeeper.Record
	closed  bool

	signal    chan struct{}
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewWriteBehind starts the background writer for store. Failed writes are
// logged and counted on recorder, which may be nil.
func NewWriteBehind(store timekeeper.Store, logger logrus.FieldLogger, recorder metrics.Recorder) *WriteBehind {
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	writer := &WriteBehind{
		store:    store,
		logger:   logger,
		recorder: recorder,
		signal:   make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go writer.run()
	return writer
}

// Load reads straight from the wrapped store.
func (writer *WriteBehind) Load() (timekeeper.Record, error) {
	return writer.store.Load()
}

// Save queues record and returns immediately.
func (writer *WriteBehind) Save(record timekeeper.Record) error {
	writer.mu.Lock()
	if writer.closed {
		writer.mu.Unlock()
		return ErrClosed
	}
	writer.pending = &record
	writer.mu.Unlock()

	select {
	case writer.signal <- struct{}{}:
	default:
	}
	return nil
}

// Close writes any pending record, stops the writer and closes the wrapped
// store when it implements io.Closer.
func (writer *WriteBehind) Close() error {
	var err error
	writer.closeOnce.Do(func() {
		writer.mu.Lock()
		writer.closed = true
		writer.mu.Unlock()

		close(writer.stop)
		<-writer.done

		if closer, ok := writer.store.(io.Closer); ok {
			err = closer.Close()
		}
	})
	return err
}

func (writer *WriteBehind) run() {
	defer close(writer.done)
	for {
		select {
		case <-writer.signal:
			writer.flush()
		case <-writer.stop:
			writer.flush()
			return
		}
	}
}

func (writer *WriteBehind) flush() {
	writer.mu.Lock()
	record := writer.pending
	writer.pending = nil
	writer.mu.Unlock()
	if record == nil {
		return
	}

	if err := writer.store.Save(*record); err != nil {
		writer.recorder.IncStoreFailure("save")
		writer.logger.WithError(err).WithField("phase", record.Phase).Warn("write timer state")
	}
}

package main

import (
	"context"
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/driver"
	"pomodoro/internal/metrics"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
)

// session owns everything a running timer needs. Close releases it in reverse
// order so the last state reaches the backend before the lock is dropped.
type session struct {
	lock     *platform.InstanceLock
	store    *storage.WriteBehind
	notifier *notify.Async
	registry *prom.Registry
	keeper   *timekeeper.TimeKeeper
	driver   *driver.Driver
	logger   logrus.FieldLogger
}

func openSession(fs afero.Fs, settings preferences.Settings, stateDir string, notifier timekeeper.Notifier, logger *logrus.Logger) (*session, error) {
	lock, err := platform.LockStateDir(stateDir)
	if err != nil {
		return nil, fmt.Errorf("lock state directory: %w", err)
	}
	sess := &session{lock: lock, logger: logger}

	backend, err := storage.OpenState(fs, settings.StateBackend, stateDir)
	if err != nil {
		sess.Close()
		return nil, err
	}
	sess.registry = prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(sess.registry)
	sess.store = storage.NewWriteBehind(backend, logger.WithField("backend", settings.StateBackend), recorder)

	sess.notifier, err = notify.NewAsync(notifier, 2, logger.WithField("component", "notify"))
	if err != nil {
		sess.Close()
		return nil, err
	}

	sess.keeper, err = timekeeper.New(settings.Durations(), timekeeper.Config{
		Store:    sess.store,
		Notifier: sess.notifier,
		Recorder: recorder,
		Logger:   logger.WithField("component", "timekeeper"),
	})
	if err != nil {
		sess.Close()
		return nil, err
	}

	sess.driver, err = driver.New(sess.keeper, time.Second, logger.WithField("component", "driver"))
	if err != nil {
		sess.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"state_dir": stateDir,
		"backend":   settings.StateBackend,
		"phase":     sess.keeper.CurrentPhase(),
		"remaining": sess.keeper.SecondsRemaining(),
	}).Info("timer ready")
	return sess, nil
}

// serveMetrics exposes the session registry until ctx ends. An empty address
// disables it.
func (sess *session) serveMetrics(ctx context.Context, addr string) {
	if addr == "" {
		return
	}
	go func() {
		sess.logger.WithField("addr", addr).Info("serving metrics")
		if err := metrics.Serve(ctx, addr, sess.registry); err != nil {
			sess.logger.WithError(err).Warn("metrics server stopped")
		}
	}()
}

func (sess *session) Close() {
	if sess.driver != nil {
		if err := sess.driver.Stop(); err != nil {
			sess.logger.WithError(err).Warn("stop tick driver")
		}
	}
	if sess.keeper != nil {
		sess.keeper.Close()
	}
	if sess.notifier != nil {
		sess.notifier.Release()
	}
	if sess.store != nil {
		if err := sess.store.Close(); err != nil {
			sess.logger.WithError(err).Warn("flush timer state")
		}
	}
	if sess.lock != nil {
		if err := sess.lock.Release(); err != nil {
			sess.logger.WithError(err).Debug("release instance lock")
		}
	}
}

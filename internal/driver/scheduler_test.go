package driver

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

type countingTicker struct {
	ticks atomic.Int64
}

func (ticker *countingTicker) Tick() {
	ticker.ticks.Add(1)
}

func TestDriverTicksUntilStopped(t *testing.T) {
	defer goleak.VerifyNone(t)

	target := &countingTicker{}
	driver, err := New(target, 10*time.Millisecond, nil)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, driver.Interval())

	driver.Start()
	require.Eventually(t, func() bool { return target.ticks.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, driver.Stop())

	stopped := target.ticks.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, target.ticks.Load())
}

func TestDriverDefaultsToOneSecond(t *testing.T) {
	defer goleak.VerifyNone(t)

	driver, err := New(&countingTicker{}, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Second, driver.Interval())
	require.NoError(t, driver.Stop())
}

func TestDriverAdvancesTimeKeeperToBoundary(t *testing.T) {
	defer goleak.VerifyNone(t)

	keeper, err := timekeeper.New(model.Durations{
		FocusSeconds:       3,
		ShortBreakSeconds:  2,
		LongBreakSeconds:   5,
		CyclesPerLongBreak: 2,
	}, timekeeper.Config{})
	require.NoError(t, err)

	driver, err := New(keeper, 10*time.Millisecond, nil)
	require.NoError(t, err)
	keeper.Start()
	driver.Start()

	require.Eventually(t, func() bool {
		return keeper.CurrentPhase() == timekeeper.PhaseShortBreak
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, driver.Stop())

	assert.Equal(t, timekeeper.State{
		Phase:                timekeeper.PhaseShortBreak,
		RemainingSeconds:     2,
		CompletedFocusCycles: 1,
	}, keeper.Snapshot())
}

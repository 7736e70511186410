package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/timekeeper"
)

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "00:59", FormatClock(59))
	assert.Equal(t, "00:00", FormatClock(-4))
	assert.Equal(t, "100:00", FormatClock(6000))
}

func TestLine(t *testing.T) {
	assert.Equal(t, "Focus 24:59", Line(timekeeper.State{
		Phase: timekeeper.PhaseFocus, RemainingSeconds: 1499, Running: true,
	}))
	assert.Equal(t, "Short break 05:00 (paused) · 1 cycle", Line(timekeeper.State{
		Phase: timekeeper.PhaseShortBreak, RemainingSeconds: 300, CompletedFocusCycles: 1,
	}))
	assert.Equal(t, "Long break 15:00 (paused) · 4 cycles", Line(timekeeper.State{
		Phase: timekeeper.PhaseLongBreak, RemainingSeconds: 900, CompletedFocusCycles: 4,
	}))
}

func TestFromEvent(t *testing.T) {
	event := timekeeper.Event{
		Type:      timekeeper.EventTransition,
		Phase:     timekeeper.PhaseLongBreak,
		From:      timekeeper.PhaseFocus,
		Remaining: 900,
		Cycles:    4,
	}
	assert.Equal(t, timekeeper.State{
		Phase:                timekeeper.PhaseLongBreak,
		RemainingSeconds:     900,
		CompletedFocusCycles: 4,
	}, FromEvent(event))
}

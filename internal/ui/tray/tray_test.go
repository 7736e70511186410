package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/timekeeper"
)

func TestShowTogglesControls(t *testing.T) {
	var started, paused, reset int
	manager := New(nil, Callbacks{
		OnStart: func() { started++ },
		OnPause: func() { paused++ },
		OnReset: func() { reset++ },
	})

	manager.Show(timekeeper.State{Phase: timekeeper.PhaseFocus, RemainingSeconds: 1499, Running: true})
	assert.Equal(t, "Status: Focus 24:59", manager.StatusLabel())
	assert.True(t, manager.startItem.Disabled)
	assert.False(t, manager.pauseItem.Disabled)

	manager.Show(timekeeper.State{Phase: timekeeper.PhaseShortBreak, RemainingSeconds: 300, CompletedFocusCycles: 1})
	assert.Equal(t, "Status: Short break 05:00 (paused) · 1 cycle", manager.StatusLabel())
	assert.False(t, manager.startItem.Disabled)
	assert.True(t, manager.pauseItem.Disabled)

	manager.startItem.Action()
	manager.pauseItem.Action()
	for _, item := range manager.menu.Items {
		if item.Label == "Reset" {
			item.Action()
		}
	}
	assert.Equal(t, []int{1, 1, 1}, []int{started, paused, reset})
}

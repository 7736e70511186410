// Package status renders timer state as short text for presenters.
package status

import (
	"fmt"

	"pomodoro/internal/core/timekeeper"
)

// FormatClock renders seconds as MM:SS. Negative values render as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Line describes a state in one line, e.g. "Focus 24:59 (paused) · 2 cycles".
func Line(state timekeeper.State) string {
	line := fmt.Sprintf("%s %s", state.Phase.Label(), FormatClock(state.RemainingSeconds))
	if !state.Running {
		line += " (paused)"
	}
	switch state.CompletedFocusCycles {
	case 0:
		return line
	case 1:
		return line + " · 1 cycle"
	default:
		return fmt.Sprintf("%s · %d cycles", line, state.CompletedFocusCycles)
	}
}

// FromEvent extracts the state carried by an event.
func FromEvent(event timekeeper.Event) timekeeper.State {
	return timekeeper.State{
		Phase:                event.Phase,
		RemainingSeconds:     event.Remaining,
		CompletedFocusCycles: event.Cycles,
		Running:              event.Running,
	}
}

// Package notify announces phase changes to the user.
package notify

import (
	"errors"

	"pomodoro/internal/core/timekeeper"
)

// Message returns the announcement for entering phase.
func Message(phase timekeeper.Phase) string {
	switch phase {
	case timekeeper.PhaseFocus:
		return "Break is over. Press Start to focus."
	case timekeeper.PhaseShortBreak:
		return "Focus session done. Take a short break."
	case timekeeper.PhaseLongBreak:
		return "Cycle complete. Time for a long break."
	}
	return phase.Label() + " started."
}

// Func adapts a plain function to timekeeper.Notifier.
type Func func(phase timekeeper.Phase) error

func (fn Func) Notify(phase timekeeper.Phase) error {
	return fn(phase)
}

// Multi delivers to every notifier and joins their errors.
type Multi []timekeeper.Notifier

func (notifiers Multi) Notify(phase timekeeper.Phase) error {
	var errs []error
	for _, notifier := range notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(phase); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

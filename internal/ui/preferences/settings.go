package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	FocusDuration      time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	CyclesPerLongBreak int

	DesktopNotifications bool
	Bell                 bool

	StateBackend   string
	MetricsAddress string
}

// DefaultSettings returns default settings for the timer.
func DefaultSettings() Settings {
	durations := model.DefaultDurations()
	return Settings{
		FocusDuration:        time.Duration(durations.FocusSeconds) * time.Second,
		ShortBreakDuration:   time.Duration(durations.ShortBreakSeconds) * time.Second,
		LongBreakDuration:    time.Duration(durations.LongBreakSeconds) * time.Second,
		CyclesPerLongBreak:   durations.CyclesPerLongBreak,
		DesktopNotifications: true,
		Bell:                 true,
		StateBackend:         "yaml",
	}
}

// Durations converts settings to whole-second phase lengths.
func (settings Settings) Durations() model.Durations {
	return model.Durations{
		FocusSeconds:       int(settings.FocusDuration / time.Second),
		ShortBreakSeconds:  int(settings.ShortBreakDuration / time.Second),
		LongBreakSeconds:   int(settings.LongBreakDuration / time.Second),
		CyclesPerLongBreak: settings.CyclesPerLongBreak,
	}
}

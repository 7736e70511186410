package preferences

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/model"
)

func TestDefaultSettingsMatchDefaultDurations(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, model.DefaultDurations(), settings.Durations())
	assert.True(t, settings.DesktopNotifications)
	assert.Equal(t, "yaml", settings.StateBackend)
}

func TestDurationsTruncateToWholeSeconds(t *testing.T) {
	settings := DefaultSettings()
	settings.FocusDuration = 90*time.Second + 500*time.Millisecond
	settings.ShortBreakDuration = 400 * time.Millisecond

	durations := settings.Durations()
	assert.Equal(t, 90, durations.FocusSeconds)
	assert.Equal(t, 0, durations.ShortBreakSeconds)
	assert.Error(t, durations.Validate())
}

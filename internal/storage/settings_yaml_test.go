package storage

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/preferences"
)

const settingsPath = "/config/Pomodoro/settings.yaml"

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(afero.NewMemMapFs(), settingsPath)
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
	assert.Equal(t, model.DefaultDurations(), settings.Durations())
}

func TestLoadSettingsAppliesPositiveValuesOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `focus_minutes: 50
short_break_minutes: 0
long_break_minutes: -3
cycles_per_long_break: 3
bell: false
state_backend: sqlite
metrics_address: 127.0.0.1:9310
`
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte(content), 0o644))

	settings, err := LoadSettings(fs, settingsPath)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Minute, settings.FocusDuration)
	assert.Equal(t, 5*time.Minute, settings.ShortBreakDuration)
	assert.Equal(t, 15*time.Minute, settings.LongBreakDuration)
	assert.Equal(t, 3, settings.CyclesPerLongBreak)
	assert.False(t, settings.Bell)
	assert.True(t, settings.DesktopNotifications)
	assert.Equal(t, BackendSQLite, settings.StateBackend)
	assert.Equal(t, "127.0.0.1:9310", settings.MetricsAddress)
}

func TestLoadSettingsRejectsInvalidYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, settingsPath, []byte("focus_minutes: [1, 2"), 0o644))

	settings, err := LoadSettings(fs, settingsPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	settings := preferences.DefaultSettings()
	settings.FocusDuration = 45 * time.Minute
	settings.CyclesPerLongBreak = 2
	settings.DesktopNotifications = false

	require.NoError(t, SaveSettings(fs, settingsPath, settings))

	loaded, err := LoadSettings(fs, settingsPath)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestSaveSettingsRejectsPartialMinutes(t *testing.T) {
	fs := afero.NewMemMapFs()
	settings := preferences.DefaultSettings()
	settings.FocusDuration = 30 * time.Second

	err := SaveSettings(fs, settingsPath, settings)
	assert.ErrorContains(t, err, "focus length")

	exists, err := afero.Exists(fs, settingsPath)
	require.NoError(t, err)
	assert.False(t, exists)
}

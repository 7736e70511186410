package storage

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"pomodoro/internal/ui/preferences"
)

// SettingsFileName is the default settings file inside the config directory.
const SettingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes         int    `yaml:"focus_minutes"`
	ShortBreakMinutes    int    `yaml:"short_break_minutes"`
	LongBreakMinutes     int    `yaml:"long_break_minutes"`
	CyclesPerLongBreak   int    `yaml:"cycles_per_long_break"`
	DesktopNotifications *bool  `yaml:"desktop_notifications,omitempty"`
	Bell                 *bool  `yaml:"bell,omitempty"`
	StateBackend         string `yaml:"state_backend,omitempty"`
	MetricsAddress       string `yaml:"metrics_address,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(fs afero.Fs, path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML. The file stores whole
// minutes, so any other phase length is rejected.
func SaveSettings(fs afero.Fs, path string, settings preferences.Settings) error {
	for field, length := range map[string]time.Duration{
		"focus":       settings.FocusDuration,
		"short break": settings.ShortBreakDuration,
		"long break":  settings.LongBreakDuration,
	} {
		if length < time.Minute || length%time.Minute != 0 {
			return fmt.Errorf("%s length %s is not a whole number of minutes", field, length)
		}
	}

	fileData := yamlSettings{
		FocusMinutes:         int(settings.FocusDuration / time.Minute),
		ShortBreakMinutes:    int(settings.ShortBreakDuration / time.Minute),
		LongBreakMinutes:     int(settings.LongBreakDuration / time.Minute),
		CyclesPerLongBreak:   settings.CyclesPerLongBreak,
		DesktopNotifications: &settings.DesktopNotifications,
		Bell:                 &settings.Bell,
		StateBackend:         settings.StateBackend,
		MetricsAddress:       settings.MetricsAddress,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}
	if err := WriteFileAtomic(fs, path, serialized); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 {
		settings.FocusDuration = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakDuration = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.CyclesPerLongBreak > 0 {
		settings.CyclesPerLongBreak = fileData.CyclesPerLongBreak
	}

	if fileData.DesktopNotifications != nil {
		settings.DesktopNotifications = *fileData.DesktopNotifications
	}
	if fileData.Bell != nil {
		settings.Bell = *fileData.Bell
	}
	if fileData.StateBackend != "" {
		settings.StateBackend = fileData.StateBackend
	}
	settings.MetricsAddress = fileData.MetricsAddress
}

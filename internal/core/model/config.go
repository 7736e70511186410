package model

import (
	"errors"
	"fmt"
)

// ErrInvalidDurations is wrapped by every ConfigError.
var ErrInvalidDurations = errors.New("invalid durations")

// Durations defines the fixed phase lengths and the long-break cadence.
// Values are whole seconds, one per host tick.
type Durations struct {
	FocusSeconds       int
	ShortBreakSeconds  int
	LongBreakSeconds   int
	CyclesPerLongBreak int
}

// DefaultDurations returns the classic 25/5/15 schedule with a long break every fourth cycle.
func DefaultDurations() Durations {
	return Durations{
		FocusSeconds:       25 * 60,
		ShortBreakSeconds:  5 * 60,
		LongBreakSeconds:   15 * 60,
		CyclesPerLongBreak: 4,
	}
}

// ConfigError reports the first non-positive field of a Durations value.
type ConfigError struct {
	Field string
	Value int
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s must be positive, got %d", ErrInvalidDurations, err.Field, err.Value)
}

func (err *ConfigError) Unwrap() error {
	return ErrInvalidDurations
}

// Validate rejects any configuration that could divide by zero or never end a phase.
func (durations Durations) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"focus seconds", durations.FocusSeconds},
		{"short break seconds", durations.ShortBreakSeconds},
		{"long break seconds", durations.LongBreakSeconds},
		{"cycles per long break", durations.CyclesPerLongBreak},
	}
	for _, field := range fields {
		if field.value <= 0 {
			return &ConfigError{Field: field.name, Value: field.value}
		}
	}
	return nil
}

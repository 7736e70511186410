package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/timekeeper"
)

// StateFileName is the file used by the yaml backend inside the state directory.
const StateFileName = "state.yaml"

type yamlState struct {
	Phase                *string `yaml:"phase"`
	RemainingSeconds     *int    `yaml:"remaining_seconds"`
	CompletedFocusCycles *int    `yaml:"completed_focus_cycles"`
}

// StateFile keeps the timer state in a YAML document.
type StateFile struct {
	fs   afero.Fs
	path string
}

// NewStateFile returns a StateFile stored at path on fs.
func NewStateFile(fs afero.Fs, path string) *StateFile {
	return &StateFile{fs: fs, path: path}
}

// Path returns the location of the state document.
func (file *StateFile) Path() string {
	return file.path
}

// Load reads the saved state. Missing files, missing keys and values of the
// wrong type all report timekeeper.ErrNoRecord.
func (file *StateFile) Load() (timekeeper.Record, error) {
	rawData, err := afero.ReadFile(file.fs, file.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return timekeeper.Record{}, timekeeper.ErrNoRecord
		}
		return timekeeper.Record{}, fmt.Errorf("read state file: %w", err)
	}

	var fileData yamlState
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return timekeeper.Record{}, fmt.Errorf("%w: parse state yaml: %v", timekeeper.ErrNoRecord, err)
	}
	if fileData.Phase == nil || fileData.RemainingSeconds == nil || fileData.CompletedFocusCycles == nil {
		return timekeeper.Record{}, fmt.Errorf("%w: incomplete state file %s", timekeeper.ErrNoRecord, file.path)
	}

	return timekeeper.Record{
		Phase:                timekeeper.Phase(*fileData.Phase),
		RemainingSeconds:     *fileData.RemainingSeconds,
		CompletedFocusCycles: *fileData.CompletedFocusCycles,
	}, nil
}

// Save replaces the state document atomically.
func (file *StateFile) Save(record timekeeper.Record) error {
	phase := string(record.Phase)
	fileData := yamlState{
		Phase:                &phase,
		RemainingSeconds:     &record.RemainingSeconds,
		CompletedFocusCycles: &record.CompletedFocusCycles,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal state yaml: %w", err)
	}
	if err := WriteFileAtomic(file.fs, file.path, serialized); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Close is a no-op; it lets StateFile satisfy StateStore.
func (file *StateFile) Close() error {
	return nil
}

package storage

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"pomodoro/internal/core/timekeeper"
)

// Supported state backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLiteFileName is the database used by the sqlite backend inside the state directory.
const SQLiteFileName = "state.db"

// StateStore is a timekeeper.Store that owns resources.
type StateStore interface {
	timekeeper.Store
	Close() error
}

// OpenState opens the named backend inside dir.
func OpenState(fs afero.Fs, backend, dir string) (StateStore, error) {
	switch backend {
	case BackendYAML, "":
		return NewStateFile(fs, filepath.Join(dir, StateFileName)), nil
	case BackendSQLite:
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
		store, err := NewSQLiteStore(filepath.Join(dir, SQLiteFileName))
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown state backend %q", backend)
	}
}

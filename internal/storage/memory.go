package storage

import (
	"sync"

	"pomodoro/internal/core/timekeeper"
)

// Memory is a process-local Store. It forgets everything on exit.
type Memory struct {
	mu      sync.Mutex
	record  *timekeeper.Record
	saves   int
	LoadErr error
	SaveErr error
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Preload makes record the saved state.
func (memory *Memory) Preload(record timekeeper.Record) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	memory.record = &record
}

func (memory *Memory) Load() (timekeeper.Record, error) {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	if memory.LoadErr != nil {
		return timekeeper.Record{}, memory.LoadErr
	}
	if memory.record == nil {
		return timekeeper.Record{}, timekeeper.ErrNoRecord
	}
	return *memory.record, nil
}

func (memory *Memory) Save(record timekeeper.Record) error {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	if memory.SaveErr != nil {
		return memory.SaveErr
	}
	memory.record = &record
	memory.saves++
	return nil
}

// Saves returns the number of successful saves.
func (memory *Memory) Saves() int {
	memory.mu.Lock()
	defer memory.mu.Unlock()
	return memory.saves
}

func (memory *Memory) Close() error {
	return nil
}

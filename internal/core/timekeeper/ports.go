package timekeeper

import "errors"

// ErrNoRecord indicates that no usable saved state exists.
// Stores wrap it for missing, partial or malformed records.
var ErrNoRecord = errors.New("no saved timer state")

// Record is the durable part of the timer state.
type Record struct {
	Phase                Phase
	RemainingSeconds     int
	CompletedFocusCycles int
}

// Store persists the durable timer state between runs.
type Store interface {
	Load() (Record, error)
	Save(record Record) error
}

// Notifier is told about every phase the timer enters.
// Implementations must return quickly.
type Notifier interface {
	Notify(phase Phase) error
}

// State is a point-in-time copy of the timer.
type State struct {
	Phase                Phase
	RemainingSeconds     int
	CompletedFocusCycles int
	Running              bool
}

// Record returns the durable fields of the state.
func (state State) Record() Record {
	return Record{
		Phase:                state.Phase,
		RemainingSeconds:     state.RemainingSeconds,
		CompletedFocusCycles: state.CompletedFocusCycles,
	}
}

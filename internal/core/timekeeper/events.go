package timekeeper

// Phase represents the current Pomodoro mode. The string values are the persisted form.
type Phase string

const (
	PhaseFocus      Phase = "focus"
	PhaseShortBreak Phase = "shortBreak"
	PhaseLongBreak  Phase = "longBreak"
)

// Valid reports whether phase is one of the known phases.
func (phase Phase) Valid() bool {
	switch phase {
	case PhaseFocus, PhaseShortBreak, PhaseLongBreak:
		return true
	}
	return false
}

// Label returns a human readable phase name.
func (phase Phase) Label() string {
	switch phase {
	case PhaseFocus:
		return "Focus"
	case PhaseShortBreak:
		return "Short break"
	case PhaseLongBreak:
		return "Long break"
	}
	return string(phase)
}

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventTick       EventType = "tick"
	EventTransition EventType = "transition"
	EventStarted    EventType = "started"
	EventPaused     EventType = "paused"
	EventReset      EventType = "reset"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	From      Phase
	Remaining int
	Cycles    int
	Running   bool
	Progress  float64
}

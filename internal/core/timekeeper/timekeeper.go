package timekeeper

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"pomodoro/internal/core/model"
	"pomodoro/internal/metrics"
)

// Config contains the collaborators injected into a TimeKeeper.
// Every field is optional.
type Config struct {
	Store    Store
	Notifier Notifier
	Recorder metrics.Recorder
	Logger   logrus.FieldLogger
}

// TimeKeeper is the Pomodoro state machine. It never reads a clock: the host
// advances it by calling Tick once per second.
type TimeKeeper struct {
	mu        sync.Mutex
	durations model.Durations
	options   Config
	phase     Phase
	remaining int
	cycles    int
	running   bool
	events    []chan Event
	closed    bool
}

// New validates durations and rehydrates the timer from options.Store.
// A missing or unusable saved record yields the fresh default state.
func New(durations model.Durations, options Config) (*TimeKeeper, error) {
	if err := durations.Validate(); err != nil {
		return nil, err
	}
	if options.Recorder == nil {
		options.Recorder = metrics.NoopRecorder{}
	}
	if options.Logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		options.Logger = logger
	}

	keeper := &TimeKeeper{
		durations: durations,
		options:   options,
	}
	keeper.resetLocked()
	keeper.restore()
	keeper.options.Recorder.SetCycles(keeper.cycles)
	return keeper, nil
}

// Durations returns the configuration the timer was built with.
func (keeper *TimeKeeper) Durations() model.Durations {
	return keeper.durations
}

// Subscribe registers a new observer channel. Events are dropped for
// subscribers whose buffer is full.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Close closes all observer channels. The timer itself stays usable.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start resumes the countdown.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.running {
		return
	}
	keeper.running = true
	keeper.emitLocked(keeper.eventLocked(EventStarted))
}

// Pause freezes the countdown.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running {
		return
	}
	keeper.running = false
	keeper.emitLocked(keeper.eventLocked(EventPaused))
}

// Reset returns to a paused, fresh Focus phase and clears the cycle count.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.resetLocked()
	keeper.options.Recorder.SetCycles(0)
	keeper.saveLocked()
	keeper.options.Logger.Info("timer reset")
	keeper.emitLocked(keeper.eventLocked(EventReset))
}

// Tick advances a running countdown by one second and moves to the next phase
// once the current one has elapsed. The timer always stops at a phase boundary.
// Tick must not be called concurrently with itself.
func (keeper *TimeKeeper) Tick() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}

	from := keeper.phase
	keeper.options.Recorder.IncTick(string(from))
	keeper.remaining--
	transitioned := keeper.remaining <= 0
	if transitioned {
		keeper.advancePhaseLocked()
	}
	keeper.saveLocked()
	keeper.emitLocked(keeper.eventLocked(EventTick))

	entered := keeper.phase
	if transitioned {
		event := keeper.eventLocked(EventTransition)
		event.From = from
		keeper.emitLocked(event)
	}
	keeper.mu.Unlock()

	if transitioned {
		keeper.notify(entered)
	}
}

// CurrentPhase returns the active phase.
func (keeper *TimeKeeper) CurrentPhase() Phase {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.phase
}

// SecondsRemaining returns the countdown value of the active phase.
func (keeper *TimeKeeper) SecondsRemaining() int {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.remaining
}

// CyclesCompleted returns the number of Focus phases finished since the last reset.
func (keeper *TimeKeeper) CyclesCompleted() int {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.cycles
}

// IsActive reports whether the countdown is running.
func (keeper *TimeKeeper) IsActive() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.running
}

// ProgressRatio returns the elapsed share of the active phase in [0, 1].
func (keeper *TimeKeeper) ProgressRatio() float64 {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.progressLocked()
}

// Snapshot returns a consistent copy of the whole state.
func (keeper *TimeKeeper) Snapshot() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.stateLocked()
}

func (keeper *TimeKeeper) restore() {
	store := keeper.options.Store
	if store == nil {
		return
	}
	record, err := store.Load()
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			keeper.options.Logger.WithError(err).Debug("starting from fresh state")
			return
		}
		keeper.options.Recorder.IncStoreFailure("load")
		keeper.options.Logger.WithError(err).Warn("load timer state, starting fresh")
		return
	}
	if err := keeper.applyRecordLocked(record); err != nil {
		keeper.options.Logger.WithError(err).Warn("discarding saved timer state")
		return
	}
	keeper.options.Logger.WithFields(logrus.Fields{
		"phase":     keeper.phase,
		"remaining": keeper.remaining,
		"cycles":    keeper.cycles,
	}).Debug("timer state restored")
}

func (keeper *TimeKeeper) applyRecordLocked(record Record) error {
	if !record.Phase.Valid() {
		return fmt.Errorf("%w: unknown phase %q", ErrNoRecord, record.Phase)
	}
	if record.RemainingSeconds < 0 {
		return fmt.Errorf("%w: negative remaining seconds %d", ErrNoRecord, record.RemainingSeconds)
	}
	if record.CompletedFocusCycles < 0 {
		return fmt.Errorf("%w: negative cycle count %d", ErrNoRecord, record.CompletedFocusCycles)
	}

	remaining := record.RemainingSeconds
	if limit := keeper.durationOf(record.Phase); remaining > limit {
		remaining = limit
	}
	keeper.phase = record.Phase
	keeper.remaining = remaining
	keeper.cycles = record.CompletedFocusCycles
	keeper.running = false
	return nil
}

func (keeper *TimeKeeper) advancePhaseLocked() {
	from := keeper.phase
	if from == PhaseFocus {
		keeper.cycles++
		if keeper.cycles%keeper.durations.CyclesPerLongBreak == 0 {
			keeper.phase = PhaseLongBreak
		} else {
			keeper.phase = PhaseShortBreak
		}
		keeper.options.Recorder.SetCycles(keeper.cycles)
	} else {
		keeper.phase = PhaseFocus
	}
	keeper.remaining = keeper.durationOf(keeper.phase)
	keeper.running = false

	keeper.options.Recorder.IncTransition(string(from), string(keeper.phase))
	keeper.options.Logger.WithFields(logrus.Fields{
		"from":   from,
		"phase":  keeper.phase,
		"cycles": keeper.cycles,
	}).Info("phase complete")
}

func (keeper *TimeKeeper) resetLocked() {
	keeper.phase = PhaseFocus
	keeper.remaining = keeper.durations.FocusSeconds
	keeper.cycles = 0
	keeper.running = false
}

func (keeper *TimeKeeper) saveLocked() {
	store := keeper.options.Store
	if store == nil {
		return
	}
	if err := store.Save(keeper.stateLocked().Record()); err != nil {
		keeper.options.Recorder.IncStoreFailure("save")
		keeper.options.Logger.WithError(err).Warn("save timer state")
	}
}

func (keeper *TimeKeeper) notify(phase Phase) {
	notifier := keeper.options.Notifier
	if notifier == nil {
		return
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			keeper.options.Recorder.IncNotifyFailure()
			keeper.options.Logger.WithField("phase", phase).Errorf("notifier panic: %v", recovered)
		}
	}()
	if err := notifier.Notify(phase); err != nil {
		keeper.options.Recorder.IncNotifyFailure()
		keeper.options.Logger.WithError(err).WithField("phase", phase).Warn("notify phase change")
	}
}

func (keeper *TimeKeeper) durationOf(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return keeper.durations.ShortBreakSeconds
	case PhaseLongBreak:
		return keeper.durations.LongBreakSeconds
	default:
		return keeper.durations.FocusSeconds
	}
}

func (keeper *TimeKeeper) progressLocked() float64 {
	total := keeper.durationOf(keeper.phase)
	progress := float64(total-keeper.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (keeper *TimeKeeper) stateLocked() State {
	return State{
		Phase:                keeper.phase,
		RemainingSeconds:     keeper.remaining,
		CompletedFocusCycles: keeper.cycles,
		Running:              keeper.running,
	}
}

func (keeper *TimeKeeper) eventLocked(eventType EventType) Event {
	return Event{
		Type:      eventType,
		Phase:     keeper.phase,
		Remaining: keeper.remaining,
		Cycles:    keeper.cycles,
		Running:   keeper.running,
		Progress:  keeper.progressLocked(),
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

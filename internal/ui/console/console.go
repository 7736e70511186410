// Package console is a terminal presenter for the timer.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/ui/status"
)

// Controller is the part of the timer a terminal user can drive.
type Controller interface {
	Start()
	Pause()
	Reset()
	Snapshot() timekeeper.State
}

const help = "commands: s(tart), p(ause), r(eset), (st)atus, q(uit)"

// Presenter prints timer events to a writer.
type Presenter struct {
	mu     sync.Mutex
	writer io.Writer
}

// New returns a Presenter writing to writer.
func New(writer io.Writer) *Presenter {
	return &Presenter{writer: writer}
}

// Render prints event if it is worth showing: every state change, and
// running ticks on whole minutes.
func (presenter *Presenter) Render(event timekeeper.Event) bool {
	if event.Type == timekeeper.EventTick && (!event.Running || event.Remaining%60 != 0) {
		return false
	}
	line := status.Line(status.FromEvent(event))
	if event.Type == timekeeper.EventTransition {
		line = fmt.Sprintf("%s finished -> %s", event.From.Label(), line)
	}
	presenter.println(line)
	return true
}

// Watch renders events until the channel closes or ctx is done.
func (presenter *Presenter) Watch(ctx context.Context, events <-chan timekeeper.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			presenter.Render(event)
		}
	}
}

// ReadCommands applies one command per input line until "quit" or EOF.
func (presenter *Presenter) ReadCommands(reader io.Reader, controller Controller) error {
	scanner := bufio.NewScanner(reader)
	presenter.println(help)
	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "s", "start":
			controller.Start()
		case "p", "pause":
			controller.Pause()
		case "r", "reset":
			controller.Reset()
		case "st", "status":
			presenter.println(status.Line(controller.Snapshot()))
		case "q", "quit", "exit":
			return nil
		case "":
		default:
			presenter.println(help)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read commands: %w", err)
	}
	return nil
}

func (presenter *Presenter) println(line string) {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	_, _ = fmt.Fprintln(presenter.writer, line)
}

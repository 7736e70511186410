package notify

import (
	"fmt"
	"io"
	"sync"

	"pomodoro/internal/core/timekeeper"
)

// Bell rings the terminal bell and prints the announcement.
type Bell struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewBell returns a Bell writing to writer.
func NewBell(writer io.Writer) *Bell {
	return &Bell{writer: writer}
}

func (bell *Bell) Notify(phase timekeeper.Phase) error {
	bell.mu.Lock()
	defer bell.mu.Unlock()
	if _, err := fmt.Fprintf(bell.writer, "\a%s\n", Message(phase)); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

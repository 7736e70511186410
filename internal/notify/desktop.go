package notify

import (
	"errors"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/timekeeper"
)

// Desktop shows a system notification through the fyne app.
type Desktop struct {
	app   fyne.App
	title string
}

// NewDesktop returns a Desktop notifier. Title defaults to "Pomodoro".
func NewDesktop(app fyne.App, title string) *Desktop {
	if title == "" {
		title = "Pomodoro"
	}
	return &Desktop{app: app, title: title}
}

func (desktop *Desktop) Notify(phase timekeeper.Phase) error {
	if desktop.app == nil {
		return errors.New("desktop notifications unavailable")
	}
	notification := fyne.NewNotification(desktop.title, Message(phase))
	fyne.Do(func() {
		desktop.app.SendNotification(notification)
	})
	return nil
}

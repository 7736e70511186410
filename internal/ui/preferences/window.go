package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Backends offered in the preferences window.
var Backends = []string{"yaml", "sqlite"}

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	focus      *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	cycles     *widget.Entry
	desktop    *widget.Check
	bell       *widget.Check
	backend    *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:     window,
		settings:   settings,
		onSave:     onSave,
		focus:      widget.NewEntry(),
		shortBreak: widget.NewEntry(),
		longBreak:  widget.NewEntry(),
		cycles:     widget.NewEntry(),
		desktop:    widget.NewCheck("Desktop notifications", nil),
		bell:       widget.NewCheck("Terminal bell", nil),
		backend:    widget.NewSelect(Backends, nil),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), prefs.focus, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break after"), prefs.cycles, widget.NewLabel("cycles")),
		prefs.desktop,
		prefs.bell,
		container.NewHBox(widget.NewLabel("State storage"), prefs.backend),
		widget.NewLabel("Changes take effect after restart."),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 360))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focus.SetText(fmt.Sprintf("%d", int(settings.FocusDuration.Minutes())))
	prefs.shortBreak.SetText(fmt.Sprintf("%d", int(settings.ShortBreakDuration.Minutes())))
	prefs.longBreak.SetText(fmt.Sprintf("%d", int(settings.LongBreakDuration.Minutes())))
	prefs.cycles.SetText(strconv.Itoa(settings.CyclesPerLongBreak))
	prefs.desktop.SetChecked(settings.DesktopNotifications)
	prefs.bell.SetChecked(settings.Bell)
	prefs.backend.SetSelected(settings.StateBackend)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.focus.Text); ok {
		settings.FocusDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.shortBreak.Text); ok {
		settings.ShortBreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.longBreak.Text); ok {
		settings.LongBreakDuration = time.Duration(minutes) * time.Minute
	}
	if cycles, ok := parsePositiveInt(prefs.cycles.Text); ok {
		settings.CyclesPerLongBreak = cycles
	}
	settings.DesktopNotifications = prefs.desktop.Checked
	settings.Bell = prefs.bell.Checked
	if prefs.backend.Selected != "" {
		settings.StateBackend = prefs.backend.Selected
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

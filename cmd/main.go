package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/console"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/status"
	"pomodoro/internal/ui/tray"
)

const appName = "Pomodoro"

var CLI struct {
	Config      string `short:"c" help:"Settings file (default: <user config dir>/Pomodoro/settings.yaml)"`
	StateDir    string `help:"Directory holding the saved timer state (default: the settings directory)"`
	Backend     string `help:"State backend: yaml, sqlite or memory"`
	MetricsAddr string `help:"Serve Prometheus metrics on this address"`
	Verbose     bool   `short:"v" help:"Enable debug logging"`

	Focus      time.Duration `help:"Focus length, e.g. 25m"`
	ShortBreak time.Duration `help:"Short break length, e.g. 5m"`
	LongBreak  time.Duration `help:"Long break length, e.g. 15m"`
	Cycles     int           `help:"Focus cycles before a long break"`

	Tray struct{} `cmd:"" default:"1" help:"Run in the system tray"`

	Run struct {
		Autostart bool `help:"Start the first phase immediately"`
	} `cmd:"" help:"Run in the terminal"`

	Status struct{} `cmd:"" help:"Print the saved timer state"`

	Reset struct{} `cmd:"" help:"Reset the saved timer state"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("pomodoro"),
		kong.Description("Pomodoro focus/break timer."),
		kong.UsageOnError(),
	)

	logger := newLogger(CLI.Verbose)
	fs := afero.NewOsFs()

	configPath, stateDir, err := resolvePaths()
	if err != nil {
		logger.WithError(err).Fatal("resolve paths")
	}
	fileSettings, err := storage.LoadSettings(fs, configPath)
	if err != nil {
		logger.WithError(err).WithField("path", configPath).Warn("using default settings")
	}
	settings := applyFlags(fileSettings)

	switch ctx.Command() {
	case "tray":
		err = runTray(fs, settings, fileSettings, configPath, stateDir, logger)
	case "run":
		err = runTerminal(fs, settings, stateDir, CLI.Run.Autostart, logger)
	case "status":
		err = printStatus(fs, settings, stateDir, logger)
	case "reset":
		err = resetState(fs, settings, stateDir, logger)
	default:
		err = fmt.Errorf("unknown command %q", ctx.Command())
	}
	if err != nil {
		logger.WithError(err).Error("pomodoro failed")
		os.Exit(1)
	}
}

func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func resolvePaths() (string, string, error) {
	configPath := CLI.Config
	if configPath == "" {
		configDir, err := platform.ConfigDir(appName)
		if err != nil {
			return "", "", err
		}
		configPath = filepath.Join(configDir, storage.SettingsFileName)
	}
	stateDir := CLI.StateDir
	if stateDir == "" {
		stateDir = filepath.Dir(configPath)
	}
	return configPath, stateDir, nil
}

// applyFlags returns settings with the command line overrides applied. The
// overrides last for this run only and never reach the settings file.
func applyFlags(settings preferences.Settings) preferences.Settings {
	if CLI.Focus > 0 {
		settings.FocusDuration = CLI.Focus
	}
	if CLI.ShortBreak > 0 {
		settings.ShortBreakDuration = CLI.ShortBreak
	}
	if CLI.LongBreak > 0 {
		settings.LongBreakDuration = CLI.LongBreak
	}
	if CLI.Cycles > 0 {
		settings.CyclesPerLongBreak = CLI.Cycles
	}
	if CLI.Backend != "" {
		settings.StateBackend = CLI.Backend
	}
	if CLI.MetricsAddr != "" {
		settings.MetricsAddress = CLI.MetricsAddr
	}
	return settings
}

func runTray(fs afero.Fs, settings, fileSettings preferences.Settings, configPath, stateDir string, logger *logrus.Logger) error {
	fyneApp := app.NewWithID("com.pomodoro.timer")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform, use the run command")
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("Pomodoro is running in the system tray."))
	trayWindow.SetCloseIntercept(trayWindow.Hide)
	desktopApp.SetSystemTrayWindow(trayWindow)

	var notifiers notify.Multi
	if settings.DesktopNotifications {
		notifiers = append(notifiers, notify.NewDesktop(fyneApp, appName))
	}
	if settings.Bell {
		notifiers = append(notifiers, notify.NewBell(os.Stdout))
	}

	sess, err := openSession(fs, settings, stateDir, notifiers, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	metricsCtx, cancelMetrics := context.WithCancel(context.Background())
	defer cancelMetrics()
	sess.serveMetrics(metricsCtx, settings.MetricsAddress)

	keeper := sess.keeper
	prefsWindow := preferences.New(fyneApp, fileSettings, func(updated preferences.Settings) {
		if err := storage.SaveSettings(fs, configPath, updated); err != nil {
			logger.WithError(err).WithField("path", configPath).Error("save settings")
			return
		}
		logger.WithField("path", configPath).Info("settings saved, restart to apply")
	})

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnStart:       keeper.Start,
		OnPause:       keeper.Pause,
		OnReset:       keeper.Reset,
		OnPreferences: prefsWindow.Show,
		OnQuit:        fyneApp.Quit,
	})
	showState := func(state timekeeper.State) {
		trayManager.Show(state)
		if state.Running {
			desktopApp.SetSystemTrayIcon(theme.MediaPlayIcon())
		} else {
			desktopApp.SetSystemTrayIcon(theme.MediaPauseIcon())
		}
	}
	showState(keeper.Snapshot())

	events := keeper.Subscribe(16)
	go func() {
		for event := range events {
			fyne.Do(func() {
				showState(status.FromEvent(event))
			})
		}
	}()

	sess.driver.Start()
	fyneApp.Run()
	return nil
}

func runTerminal(fs afero.Fs, settings preferences.Settings, stateDir string, autostart bool, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var notifiers notify.Multi
	if settings.Bell {
		notifiers = append(notifiers, notify.NewBell(os.Stdout))
	}
	sess, err := openSession(fs, settings, stateDir, notifiers, logger)
	if err != nil {
		return err
	}
	defer sess.Close()
	sess.serveMetrics(ctx, settings.MetricsAddress)

	keeper := sess.keeper
	presenter := console.New(os.Stdout)
	events := keeper.Subscribe(64)
	go presenter.Watch(ctx, events)

	fmt.Println(status.Line(keeper.Snapshot()))
	if autostart {
		keeper.Start()
	}
	sess.driver.Start()

	go func() {
		if err := presenter.ReadCommands(os.Stdin, keeper); err != nil {
			logger.WithError(err).Warn("terminal input closed")
		}
		stop()
	}()

	<-ctx.Done()
	return nil
}

func printStatus(fs afero.Fs, settings preferences.Settings, stateDir string, logger *logrus.Logger) error {
	store, err := storage.OpenState(fs, settings.StateBackend, stateDir)
	if err != nil {
		return err
	}
	defer store.Close()

	keeper, err := timekeeper.New(settings.Durations(), timekeeper.Config{Store: store, Logger: logger})
	if err != nil {
		return err
	}
	fmt.Printf("%s, %.0f%% done\n", status.Line(keeper.Snapshot()), keeper.ProgressRatio()*100)
	return nil
}

func resetState(fs afero.Fs, settings preferences.Settings, stateDir string, logger *logrus.Logger) error {
	lock, err := platform.LockStateDir(stateDir)
	if err != nil {
		return fmt.Errorf("stop the running timer first: %w", err)
	}
	defer func() {
		_ = lock.Release()
	}()

	store, err := storage.OpenState(fs, settings.StateBackend, stateDir)
	if err != nil {
		return err
	}
	defer store.Close()

	keeper, err := timekeeper.New(settings.Durations(), timekeeper.Config{Store: store, Logger: logger})
	if err != nil {
		return err
	}
	keeper.Reset()
	fresh := keeper.Snapshot()
	if err := store.Save(fresh.Record()); err != nil {
		return fmt.Errorf("save reset state: %w", err)
	}
	fmt.Println(status.Line(fresh))
	return nil
}

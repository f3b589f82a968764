package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kataras/golog"

	"github.com/stigoleg/jigglepad/internal/config"
	"github.com/stigoleg/jigglepad/internal/device"
	"github.com/stigoleg/jigglepad/internal/lifecycle"
	"github.com/stigoleg/jigglepad/internal/monitor"
	"github.com/stigoleg/jigglepad/internal/touchpad"
	"github.com/stigoleg/jigglepad/internal/ui"
)

const appVersion = "0.4.0"

// stepTimeout bounds each cleanup step that waits on in-flight work.
const stepTimeout = 2 * time.Second

// shutdownBudget is the total cleanup deadline: every waiting step plus a
// second for the quick ones that run after them.
func shutdownBudget(waits ...time.Duration) time.Duration {
	total := time.Second
	for _, w := range waits {
		total += w
	}
	return total
}

func main() {
	cfg := config.ParseFlags(appVersion)

	f, err := tea.LogToFile(cfg.LogFile, "jigglepad")
	if err != nil {
		log.Fatal(err)
	}
	golog.SetOutput(f)
	golog.SetLevel(cfg.LogLevel)

	if created, err := config.InitIfMissing(config.Path()); err != nil {
		golog.Warnf("writing default config: %v", err)
	} else if created {
		golog.Infof("wrote default config to %s", config.Path())
	}

	cleanup := lifecycle.NewManager(shutdownBudget(stepTimeout, stepTimeout))
	cleanup.RegisterFunc("log file", f.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cleanup.RegisterFunc("requests", func() error {
		cancel()
		return nil
	})

	client := device.NewClient(device.Options{
		BaseURL:  cfg.DeviceURL,
		Username: cfg.Username,
		Password: cfg.Password,
		Timeout:  cfg.RequestTimeout.Duration,
	})

	dispatcher := device.NewDispatcher(ctx, client)
	cleanup.RegisterFunc("dispatcher", func() error {
		if !dispatcher.Wait(stepTimeout) {
			return context.DeadlineExceeded
		}
		return nil
	})

	pad := touchpad.NewTranslator(dispatcher, touchpad.Options{
		Sensitivity: cfg.Sensitivity,
		Enabled:     cfg.TouchpadEnabled,
	})

	status := monitor.New(client, cfg.PollInterval.Duration)
	cleanup.RegisterFunc("status monitor", func() error {
		return status.StopWithTimeout(stepTimeout)
	})

	// Registered last so held buttons are released before requests stop.
	cleanup.RegisterFunc("touchpad", func() error {
		pad.ReleaseAll()
		return nil
	})

	model := ui.New(ui.Options{
		Translator: pad,
		Monitor:    status,
		Device:     client,
		DeviceURL:  cfg.DeviceURL,
		CellWidth:  cfg.CellWidth,
		CellHeight: cfg.CellHeight,
		Version:    appVersion,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithoutSignalHandler(),
	)

	dispatcher.OnError(func(cmd touchpad.Command, err error) {
		p.Send(ui.CommandFailedMsg{Command: cmd, Err: err})
	})
	status.OnUpdate(func(snap monitor.Snapshot) {
		p.Send(ui.SnapshotMsg{Snapshot: snap})
	})
	if err := status.Start(); err != nil {
		golog.Errorf("starting status monitor: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, watchedSignals()...)
	go func() {
		for sig := range sigChan {
			if isSuspend(sig) {
				golog.Infof("ignoring %v while the touchpad owns the terminal", sig)
				continue
			}
			golog.Infof("received signal: %v", sig)
			p.Quit()
			return
		}
	}()

	_, runErr := p.Run()
	signal.Stop(sigChan)

	if err := cleanup.Execute(); err != nil {
		golog.Errorf("cleanup: %v", err)
	}
	if runErr != nil {
		golog.Errorf("running program: %v", runErr)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/SoarinFerret/kensho/internal/bus"
	"github.com/SoarinFerret/kensho/internal/clock"
	"github.com/SoarinFerret/kensho/internal/config"
	"github.com/SoarinFerret/kensho/internal/engine"
	"github.com/SoarinFerret/kensho/internal/ipc"
	"github.com/SoarinFerret/kensho/internal/journal"
	"github.com/SoarinFerret/kensho/internal/loginctl"
	"github.com/SoarinFerret/kensho/internal/notify"
	"github.com/SoarinFerret/kensho/internal/registry"
	"github.com/SoarinFerret/kensho/internal/state"
)

// app holds everything one running instance owns.
type app struct {
	cfg     config.Config
	state   *state.Manager
	journal *journal.Store
	conn    *dbus.Conn
	engine  *engine.Engine

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newApp(cfg config.Config) (*app, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	a := &app{
		cfg:   cfg,
		state: state.NewManager(state.Path(cfg.DataDir), cfg.SaveDelay.Duration),
	}

	opts := engine.Options{
		Capacity: cfg.MaxClocks,
		Cadence:  cfg.TickInterval.Duration,
		Defaults: registry.Defaults{
			Label:   cfg.DefaultLabel,
			Minutes: cfg.DefaultMinutes,
			SoundID: cfg.DefaultSound,
		},
		Source: clock.SystemSource{},
		Store:  a.state,
	}

	if cfg.JournalEnabled() {
		store, err := journal.Open(filepath.Join(cfg.DataDir, journal.FileName), opts.Source)
		if err != nil {
			log.Println("Journal disabled:", err)
		} else {
			a.journal = store
			opts.Journal = store
		}
	}

	conn, err := bus.Connect()
	if err != nil {
		log.Println("Session bus unavailable, reminders only go to the log:", err)
	} else {
		a.conn = conn
	}

	notifiers := notify.Multi{notify.LogNotifier{}}
	if a.conn != nil && cfg.NotificationsEnabled() {
		notifiers = append(notifiers, notify.NewDesktopNotifier(a.conn, cfg.Notifications.Timeout.Duration))
	}
	opts.Notifier = notifiers

	a.engine = engine.New(opts)
	a.engine.Restore(a.state.State().Clocks)
	return a, nil
}

// Start runs the engine and, when a bus is available, the control service.
func (a *app) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.engine.Run(ctx); err != nil {
			log.Println("engine error:", err)
		}
	}()

	if a.cfg.HoldWhenLocked {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := loginctl.Watch(ctx, a.engine); err != nil {
				log.Println("logind watcher error:", err)
			}
		}()
	}

	if a.conn == nil {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := ipc.Serve(ctx, a.conn, a.engine); err != nil {
			log.Println("control service error:", err)
		}
	}()
}

// Close stops the engine and flushes every pending write.
func (a *app) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	a.engine.Stop()
	a.wg.Wait()
	a.engine.Wait()

	if err := a.state.Flush(); err != nil {
		log.Println("Failed to save state:", err)
	}
	if a.journal != nil {
		a.journal.Close()
	}
	if a.conn != nil {
		a.conn.Close()
	}
	log.Println("Shutdown complete")
}

// redirectLog sends the standard logger to path. With echo set the log also
// goes to stderr.
func redirectLog(path string, echo bool) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	if echo {
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	} else {
		log.SetOutput(f)
	}
	return f, nil
}

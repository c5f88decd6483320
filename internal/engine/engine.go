package engine

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/SoarinFerret/kensho/internal/clock"
	"github.com/SoarinFerret/kensho/internal/journal"
	"github.com/SoarinFerret/kensho/internal/notify"
	"github.com/SoarinFerret/kensho/internal/registry"
)

// Status is the scheduler lifecycle state.
type Status int

const (
	Idle Status = iota
	Running
	Stopped
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

const (
	DefaultCadence = 250 * time.Millisecond

	// running clocks are checkpointed this often even without user actions
	checkpointInterval = 30 * time.Second
	notifyTimeout      = 15 * time.Second
	journalTimeout     = 5 * time.Second
)

var (
	ErrAlreadyStarted = errors.New("scheduler already started")
	ErrStopped        = errors.New("scheduler stopped")
)

// Store persists clock records. state.Manager implements it.
type Store interface {
	SetClocks(records []clock.Record)
}

// Journal records completed check-ins. journal.Store implements it.
type Journal interface {
	Record(ctx context.Context, e journal.Entry) error
}

type Options struct {
	Capacity int
	Cadence  time.Duration
	Defaults registry.Defaults
	Source   clock.Source
	Notifier notify.Notifier
	Store    Store
	Journal  Journal
}

// Engine owns the clocks of one session. Ticks and commands run under one
// mutex, so they apply strictly one after another.
type Engine struct {
	mu        sync.Mutex
	reg       *registry.Registry
	cadence   time.Duration
	status    Status
	sinceSave time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
	notifier  notify.Notifier
	store     Store
	journal   Journal
	source    clock.Source
	pending   sync.WaitGroup
	subsMu    sync.Mutex
	subs      map[chan Update]struct{}
	holds     map[string]bool
}

func New(opts Options) *Engine {
	if opts.Source == nil {
		opts.Source = clock.SystemSource{}
	}
	if opts.Cadence <= 0 {
		opts.Cadence = DefaultCadence
	}
	if opts.Capacity <= 0 {
		opts.Capacity = registry.DefaultCapacity
	}
	return &Engine{
		reg:      registry.New(opts.Capacity, opts.Source, opts.Defaults),
		cadence:  opts.Cadence,
		stop:     make(chan struct{}),
		notifier: opts.Notifier,
		store:    opts.Store,
		journal:  opts.Journal,
		source:   opts.Source,
		subs:     map[chan Update]struct{}{},
		holds:    map[string]bool{},
	}
}

// Restore loads persisted clock records, replacing the current clocks.
func (e *Engine) Restore(records []json.RawMessage) {
	e.mu.Lock()
	e.reg.Restore(records)
	e.mu.Unlock()
	e.publish()
}

func (e *Engine) Cadence() time.Duration {
	return e.cadence
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Run drives Step on a ticker until ctx is cancelled or Stop is called.
func (e *Engine) Run(ctx context.Context) error {
	e.mu.Lock()
	switch e.status {
	case Running:
		e.mu.Unlock()
		return ErrAlreadyStarted
	case Stopped:
		e.mu.Unlock()
		return ErrStopped
	}
	e.status = Running
	e.mu.Unlock()

	ticker := time.NewTicker(e.cadence)
	defer ticker.Stop()

	log.Printf("Tick scheduler started (cadence %s)", e.cadence)

	for {
		select {
		case <-ctx.Done():
			log.Println("Tick scheduler shutting down...")
			e.Stop()
			return nil
		case <-e.stop:
			return nil
		case <-ticker.C:
			e.Step()
		}
	}
}

// Stop halts the scheduler and hands the current clocks to the store. It is
// safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.mu.Lock()
		e.status = Stopped
		e.persistLocked()
		e.mu.Unlock()

		close(e.stop)
	})
}

// Wait blocks until in-flight notifications have been delivered.
func (e *Engine) Wait() {
	e.pending.Wait()
}

// Step applies one tick to every clock. Clocks that complete are paused and
// announced; one clock's notification never holds up another clock.
func (e *Engine) Step() {
	delta := e.cadence.Seconds()

	e.mu.Lock()
	held := len(e.holds) > 0
	var due []notify.Event
	for _, u := range e.reg.Units() {
		u.EnsureToday()
		if u.Due || held {
			continue
		}
		if u.Tick(delta) {
			u.Paused = true
			due = append(due, notify.Event{
				Key:        u.Key,
				Identifier: u.Identifier,
				Label:      u.Label,
				SoundID:    u.SoundID,
			})
		}
	}

	if !held {
		e.sinceSave += e.cadence
	}
	if len(due) > 0 || e.sinceSave >= checkpointInterval {
		e.persistLocked()
	}
	e.mu.Unlock()

	for _, ev := range due {
		e.dispatch(ev)
	}
	e.publish()
}

// Hold freezes every clock while any reason is held. Ticks that arrive
// during a hold are dropped, not deferred.
func (e *Engine) Hold(reason string, held bool) {
	e.mu.Lock()
	changed := e.holds[reason] != held
	if held {
		e.holds[reason] = true
	} else {
		delete(e.holds, reason)
	}
	e.mu.Unlock()

	if changed {
		log.Printf("Hold %q set to %v", reason, held)
		e.publish()
	}
}

func (e *Engine) dispatch(ev notify.Event) {
	if e.notifier == nil {
		return
	}
	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := e.notifier.NotifyDue(ctx, ev); err != nil {
			log.Printf("Failed to notify for %s: %v", ev.Identifier, err)
		}
	}()
}

// persistLocked hands the current records to the store. Callers hold mu, so
// saves reach the store in the same order as the mutations they capture.
func (e *Engine) persistLocked() {
	e.sinceSave = 0
	if e.store != nil {
		e.store.SetClocks(e.reg.Records())
	}
}

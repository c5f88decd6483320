package engine

import (
	"context"
	"log"

	"github.com/SoarinFerret/kensho/internal/clock"
	"github.com/SoarinFerret/kensho/internal/journal"
)

// mutate runs fn on the clock named by ref, then persists and publishes.
func (e *Engine) mutate(ref string, fn func(u *clock.Unit)) error {
	e.mu.Lock()
	u, err := e.reg.Find(ref)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	fn(u)
	e.persistLocked()
	e.mu.Unlock()

	e.publish()
	return nil
}

// CheckIn records a check-in on the clock and restarts its interval.
func (e *Engine) CheckIn(ref string) error {
	var entry journal.Entry
	err := e.mutate(ref, func(u *clock.Unit) {
		entry = journal.Entry{
			At:              e.source.Now(),
			ClockKey:        u.Key,
			ClockName:       u.Label,
			DurationMinutes: u.ElapsedSeconds / clock.SecondsPerMinute,
		}
		u.Reset()
	})
	if err != nil {
		return err
	}

	if e.journal != nil {
		ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
		defer cancel()
		if err := e.journal.Record(ctx, entry); err != nil {
			log.Printf("Failed to journal check-in for %s: %v", entry.ClockName, err)
		}
	}
	return nil
}

func (e *Engine) TogglePause(ref string) error {
	return e.mutate(ref, (*clock.Unit).TogglePause)
}

func (e *Engine) ToggleExpanded(ref string) error {
	return e.mutate(ref, (*clock.Unit).ToggleExpanded)
}

// ApplySettings changes the interval and reminder sound. Minutes below one
// are clamped.
func (e *Engine) ApplySettings(ref string, minutes int, soundID string) error {
	return e.mutate(ref, func(u *clock.Unit) {
		u.ApplySettings(minutes, soundID)
	})
}

func (e *Engine) SetLabel(ref, label string) error {
	return e.mutate(ref, func(u *clock.Unit) {
		u.SetLabel(label)
	})
}

func (e *Engine) SetHistoryWindow(ref string, window int) error {
	return e.mutate(ref, func(u *clock.Unit) {
		u.SetHistoryWindow(window)
	})
}

// CycleHistoryWindow advances the display window 5 -> 7 -> 14 -> 5.
func (e *Engine) CycleHistoryWindow(ref string) error {
	return e.mutate(ref, func(u *clock.Unit) {
		u.SetHistoryWindow(clock.NextHistoryWindow(u.HistoryWindow))
	})
}

// Add creates a clock with the registry defaults, optionally overriding the
// label and interval. It reports false when the registry is full.
func (e *Engine) Add(label string, minutes int) (View, bool) {
	e.mu.Lock()
	u := e.reg.NewUnit()
	if u == nil {
		e.mu.Unlock()
		return View{}, false
	}
	if label != "" {
		u.SetLabel(label)
	}
	if minutes > 0 {
		u.ApplySettings(minutes, u.SoundID)
	}
	view := newView(u)
	e.persistLocked()
	e.mu.Unlock()

	e.publish()
	return view, true
}

// Remove deletes the clock. Removing the last clock leaves a default one.
func (e *Engine) Remove(ref string) error {
	e.mu.Lock()
	u, err := e.reg.Find(ref)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	e.reg.Remove(u)
	e.persistLocked()
	e.mu.Unlock()

	e.publish()
	return nil
}

// History returns the clock's identity and every retained day, oldest
// first.
func (e *Engine) History(ref string) (View, []clock.DateCount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	u, err := e.reg.Find(ref)
	if err != nil {
		return View{}, nil, err
	}
	return newView(u), u.HistoryRecords(), nil
}

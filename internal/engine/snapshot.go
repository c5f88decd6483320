package engine

import (
	"github.com/SoarinFerret/kensho/internal/clock"
)

// View is a read-only copy of one clock with its derived values.
type View struct {
	clock.Record
	RemainingSeconds float64          `json:"remaining_seconds"`
	Progress         float64          `json:"progress"`
	Recent           []clock.DayCount `json:"recent"`
}

func newView(u *clock.Unit) View {
	return View{
		Record:           u.Record(),
		RemainingSeconds: u.RemainingSeconds(),
		Progress:         u.ProgressRatio(),
		Recent:           u.RecentHistory(0),
	}
}

// Update is the state of every clock at one point in time.
type Update struct {
	Clocks   []View `json:"clocks"`
	Capacity int    `json:"capacity"`
	Full     bool   `json:"full"`
	// Held is set while the clocks are frozen, e.g. the screen is locked.
	Held     bool   `json:"held"`
}

// Snapshot copies the current state of all clocks.
func (e *Engine) Snapshot() Update {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() Update {
	units := e.reg.Units()
	views := make([]View, 0, len(units))
	for _, u := range units {
		views = append(views, newView(u))
	}
	return Update{
		Clocks:   views,
		Capacity: e.reg.Cap(),
		Full:     e.reg.Full(),
		Held:     len(e.holds) > 0,
	}
}

// Subscribe returns a channel receiving an Update after every step and
// command, and a function that ends the subscription. A subscriber that
// falls behind only ever sees the most recent update.
func (e *Engine) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, 1)
	e.subsMu.Lock()
	e.subs[ch] = struct{}{}
	e.subsMu.Unlock()

	cancel := func() {
		e.subsMu.Lock()
		delete(e.subs, ch)
		e.subsMu.Unlock()
	}
	return ch, cancel
}

func (e *Engine) publish() {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	if len(e.subs) == 0 {
		return
	}

	update := e.Snapshot()
	for ch := range e.subs {
		select {
		case ch <- update:
			continue
		default:
		}
		// replace the stale update
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- update:
		default:
		}
	}
}

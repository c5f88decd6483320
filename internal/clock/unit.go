package clock

import (
	"strings"

	"github.com/google/uuid"
)

// New creates a running unit with an empty history.
func New(identifier, label string, minutes int, src Source) *Unit {
	if src == nil {
		src = SystemSource{}
	}
	if strings.TrimSpace(label) == "" {
		label = DefaultLabel
	}
	u := &Unit{
		Key:             uuid.NewString(),
		Identifier:      identifier,
		Label:           label,
		IntervalMinutes: max(minutes, 1),
		SoundID:         SoundChime,
		History:         map[string]int{},
		HistoryWindow:   DefaultHistoryWindow,
		source:          src,
	}
	u.LastCheckInDate = u.today()
	u.EnsureToday()
	return u
}

// SetSource replaces the time source used for day rollover.
func (u *Unit) SetSource(src Source) {
	u.source = src
}

// IntervalSeconds is the configured period in seconds.
func (u *Unit) IntervalSeconds() float64 {
	return float64(u.IntervalMinutes * SecondsPerMinute)
}

// Tick advances the timer by delta seconds. It returns true only on the tick
// that completes the interval; the caller is expected to pause the unit and
// send a notification.
func (u *Unit) Tick(delta float64) bool {
	u.EnsureToday()

	if u.Paused {
		return false
	}

	total := u.IntervalSeconds()
	if u.Due && total > 0 {
		return false
	}

	// also rejects NaN
	if !(delta > 0) {
		delta = 0
	}
	u.ElapsedSeconds += delta

	if total > 0 && u.ElapsedSeconds >= total {
		u.ElapsedSeconds = total
		u.Due = true
		return true
	}
	return false
}

// Reset records a check-in and restarts the interval.
func (u *Unit) Reset() {
	u.EnsureToday()
	u.ElapsedSeconds = 0
	u.Paused = false
	u.Due = false
	u.CheckInsToday++
	u.History[u.today()] = u.CheckInsToday
	u.pruneHistory()
}

func (u *Unit) TogglePause() {
	u.Paused = !u.Paused
}

func (u *Unit) ToggleExpanded() {
	u.Expanded = !u.Expanded
}

// SetLabel renames the unit. Blank labels are ignored.
func (u *Unit) SetLabel(label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	u.Label = label
}

// ApplySettings changes the interval and reminder sound. Shrinking the
// interval below the elapsed time makes the unit due immediately.
func (u *Unit) ApplySettings(minutes int, soundID string) {
	u.IntervalMinutes = max(minutes, 1)
	u.SoundID = NormalizeSound(soundID)

	total := u.IntervalSeconds()
	u.ElapsedSeconds = min(u.ElapsedSeconds, total)
	u.Due = u.ElapsedSeconds >= total
}

func (u *Unit) RemainingSeconds() float64 {
	return max(u.IntervalSeconds()-u.ElapsedSeconds, 0)
}

func (u *Unit) ProgressRatio() float64 {
	total := u.IntervalSeconds()
	if total <= 0 {
		return 0
	}
	return max(0, min(u.ElapsedSeconds/total, 1))
}

// NormalizeSound maps unknown reminder ids to the default chime.
func NormalizeSound(id string) string {
	switch id {
	case SoundChime, SoundMetronome:
		return id
	}
	return SoundChime
}

package clock

import "time"

const (
	SecondsPerMinute = 60
	// MaxHistoryDays is how many calendar days of check-in counts are retained.
	MaxHistoryDays = 30

	DefaultIntervalMinutes = 10
	DefaultLabel           = "Mindful Session"
	// DecodedLabel is used when a persisted record carries no usable label.
	DecodedLabel         = "Mindful Clock"
	DefaultHistoryWindow = 5

	SoundChime     = "chime"
	SoundMetronome = "metronome"

	isoDate = "2006-01-02"
)

// HistoryWindows are the display windows a card can show.
var HistoryWindows = []int{5, 7, 14}

// Source abstracts the wall clock so day rollover can be tested.
type Source interface {
	Now() time.Time
}

// SystemSource reports local time; day boundaries follow the user's timezone.
type SystemSource struct{}

func (SystemSource) Now() time.Time {
	return time.Now()
}

// Unit is one independently running mindful clock.
type Unit struct {
	// Key is a stable identity assigned at creation. Identifier is only a
	// positional display label and changes when the registry is reordered.
	Key        string
	Identifier string
	Label      string

	IntervalMinutes int
	SoundID         string
	ElapsedSeconds  float64
	Paused          bool
	Due             bool
	Expanded        bool

	CheckInsToday   int
	LastCheckInDate string
	History         map[string]int
	HistoryWindow   int

	source Source
}

// DayCount is one bar of the recent-history trend.
type DayCount struct {
	Label string
	Date  string
	Count int
}

// DateCount is one row of the full check-in history.
type DateCount struct {
	Date  string
	Count int
}

package clock

import (
	"sort"
	"time"
)

func (u *Unit) now() time.Time {
	if u.source == nil {
		return time.Now()
	}
	return u.source.Now()
}

func (u *Unit) today() string {
	return u.now().Format(isoDate)
}

// EnsureToday rolls the daily counter forward when the calendar day changed
// since the last check-in. The previous day's count is frozen into history
// before the counter is reloaded from whatever history holds for today.
func (u *Unit) EnsureToday() {
	today := u.today()
	if u.History == nil {
		u.History = map[string]int{}
	}

	if u.LastCheckInDate != today {
		if u.LastCheckInDate != "" && u.CheckInsToday > 0 {
			prev := u.LastCheckInDate
			u.History[prev] = max(u.History[prev], u.CheckInsToday)
		}
		u.LastCheckInDate = today
		u.CheckInsToday = u.History[today]
	}

	if _, ok := u.History[today]; !ok {
		u.History[today] = u.CheckInsToday
	}
	u.pruneHistory()
}

// pruneHistory drops days older than the retention window and any keys that
// are not ISO dates.
func (u *Unit) pruneHistory() {
	cutoff := midday(u.now()).AddDate(0, 0, -(MaxHistoryDays - 1)).Format(isoDate)
	for day := range u.History {
		if _, err := time.Parse(isoDate, day); err != nil || day < cutoff {
			delete(u.History, day)
		}
	}
}

// RecentHistory returns exactly days entries ending today, oldest first. A
// non-positive days uses the unit's display window.
func (u *Unit) RecentHistory(days int) []DayCount {
	u.EnsureToday()

	if days <= 0 {
		days = u.HistoryWindow
	}
	if days <= 0 {
		days = DefaultHistoryWindow
	}
	days = max(1, min(days, MaxHistoryDays))

	today := midday(u.now())
	out := make([]DayCount, 0, days)
	for offset := days - 1; offset >= 0; offset-- {
		day := today.AddDate(0, 0, -offset)
		date := day.Format(isoDate)
		out = append(out, DayCount{
			Label: day.Format("Mon"),
			Date:  date,
			Count: u.History[date],
		})
	}
	return out
}

// HistoryRecords returns every retained day in ascending date order.
func (u *Unit) HistoryRecords() []DateCount {
	u.EnsureToday()

	out := make([]DateCount, 0, len(u.History))
	for day, count := range u.History {
		out = append(out, DateCount{Date: day, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (u *Unit) SetHistoryWindow(window int) {
	u.HistoryWindow = NormalizeHistoryWindow(window)
}

// NormalizeHistoryWindow returns window when it is one of HistoryWindows and
// DefaultHistoryWindow otherwise.
func NormalizeHistoryWindow(window int) int {
	for _, w := range HistoryWindows {
		if window == w {
			return window
		}
	}
	return DefaultHistoryWindow
}

// NextHistoryWindow cycles 5 -> 7 -> 14 -> 5.
func NextHistoryWindow(window int) int {
	window = NormalizeHistoryWindow(window)
	for i, w := range HistoryWindows {
		if w == window {
			return HistoryWindows[(i+1)%len(HistoryWindows)]
		}
	}
	return DefaultHistoryWindow
}

// midday pins a timestamp to noon so AddDate never lands on the wrong day
// across DST transitions.
func midday(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

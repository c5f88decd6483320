package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/SoarinFerret/kensho/internal/clock"
	"github.com/SoarinFerret/kensho/internal/engine"
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// intervalText is the card's first line, e.g. "Every 10 min • Running".
func intervalText(v engine.View) string {
	status := "Running"
	switch {
	case v.Due:
		status = "Ready now"
	case v.Paused:
		status = "Paused"
	}
	return fmt.Sprintf("Every %d min • %s", v.IntervalMinutes, status)
}

func countText(n int) string {
	if n == 1 {
		return "1 check-in today"
	}
	return fmt.Sprintf("%d check-ins today", n)
}

// nextPingText describes when the clock will next remind.
func nextPingText(v engine.View) string {
	if v.Due {
		return "Awaiting your check-in"
	}
	if v.Paused {
		return "Paused - resume to continue"
	}
	remaining := max(v.RemainingSeconds, 0)
	if remaining <= 0 {
		return "Next reminder momentarily"
	}
	return "Next reminder in " + formatRemaining(remaining)
}

// formatRemaining renders whole seconds rounded up: "4m 05s" or "42s".
func formatRemaining(seconds float64) string {
	total := int(math.Ceil(seconds))
	minutes, secs := total/60, total%60
	if minutes >= 1 {
		return fmt.Sprintf("%dm %02ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}

// progressBar renders ratio as a bar width cells wide.
func progressBar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	ratio = max(0, min(ratio, 1))
	filled := int(math.Round(ratio * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// trendBars draws one block per day scaled to the busiest day, followed by
// the weekday initials.
func trendBars(recent []clock.DayCount) (bars, labels string) {
	peak := 0
	for _, d := range recent {
		peak = max(peak, d.Count)
	}
	var b, l strings.Builder
	for _, d := range recent {
		switch {
		case d.Count == 0:
			b.WriteRune(' ')
		case peak <= 1:
			b.WriteRune(sparks[len(sparks)-1])
		default:
			idx := int(math.Round(float64(d.Count-1) / float64(peak-1) * float64(len(sparks)-1)))
			b.WriteRune(sparks[idx])
		}
		if d.Label != "" {
			l.WriteString(d.Label[:1])
		}
	}
	return b.String(), l.String()
}

package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SoarinFerret/kensho/internal/clock"
	"github.com/SoarinFerret/kensho/internal/engine"
)

func view(mutate func(*engine.View)) engine.View {
	v := engine.View{
		Record:           clock.Record{IntervalMinutes: 10},
		RemainingSeconds: 600,
	}
	if mutate != nil {
		mutate(&v)
	}
	return v
}

func TestIntervalText(t *testing.T) {
	assert.Equal(t, "Every 10 min • Running", intervalText(view(nil)))
	assert.Equal(t, "Every 10 min • Paused", intervalText(view(func(v *engine.View) { v.Paused = true })))
	assert.Equal(t, "Every 10 min • Ready now", intervalText(view(func(v *engine.View) {
		v.Paused = true
		v.Due = true
	})))
}

func TestNextPingText(t *testing.T) {
	tests := []struct {
		name string
		v    engine.View
		want string
	}{
		{"due", view(func(v *engine.View) { v.Due = true }), "Awaiting your check-in"},
		{"paused", view(func(v *engine.View) { v.Paused = true }), "Paused - resume to continue"},
		{"zero", view(func(v *engine.View) { v.RemainingSeconds = 0 }), "Next reminder momentarily"},
		{"minutes", view(func(v *engine.View) { v.RemainingSeconds = 245 }), "Next reminder in 4m 05s"},
		{"rounds up", view(func(v *engine.View) { v.RemainingSeconds = 41.2 }), "Next reminder in 42s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextPingText(tt.v))
		})
	}
}

func TestCountText(t *testing.T) {
	assert.Equal(t, "0 check-ins today", countText(0))
	assert.Equal(t, "1 check-in today", countText(1))
	assert.Equal(t, "3 check-ins today", countText(3))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "", progressBar(0.5, 0))
	assert.Equal(t, "██░░", progressBar(0.5, 4))
	assert.Equal(t, "████", progressBar(7, 4))
	assert.Equal(t, "░░░░", progressBar(-1, 4))
}

func TestTrendBars(t *testing.T) {
	bars, labels := trendBars([]clock.DayCount{
		{Label: "Mon", Count: 0},
		{Label: "Tue", Count: 1},
		{Label: "Wed", Count: 4},
	})
	assert.Equal(t, " ▁█", bars)
	assert.Equal(t, "MTW", labels)

	bars, _ = trendBars([]clock.DayCount{{Label: "Mon", Count: 1}})
	assert.Equal(t, "█", bars)
}

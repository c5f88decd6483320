package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	now time.Time
}

func (f *fakeSource) Now() time.Time { return f.now }

func (f *fakeSource) advanceDays(n int) { f.now = f.now.AddDate(0, 0, n) }

func newFake() *fakeSource {
	return &fakeSource{now: time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)} // Monday
}

func TestNew_Defaults(t *testing.T) {
	src := newFake()
	u := New("C1", "", 0, src)

	assert.Equal(t, "C1", u.Identifier)
	assert.Equal(t, DefaultLabel, u.Label)
	assert.Equal(t, 1, u.IntervalMinutes, "interval is clamped to one minute")
	assert.Equal(t, SoundChime, u.SoundID)
	assert.Equal(t, DefaultHistoryWindow, u.HistoryWindow)
	assert.Equal(t, "2024-06-03", u.LastCheckInDate)
	assert.Equal(t, map[string]int{"2024-06-03": 0}, u.History)
	assert.NotEmpty(t, u.Key)
	assert.False(t, u.Paused)
	assert.False(t, u.Due)
}

func TestTick_AccumulatesBelowInterval(t *testing.T) {
	u := New("C1", "Breath", 10, newFake())

	deltas := []float64{0.25, 1, 0, 30.5, 100, 0.25}
	sum := 0.0
	for _, d := range deltas {
		sum += d
		assert.False(t, u.Tick(d))
	}
	assert.InDelta(t, sum, u.ElapsedSeconds, 1e-9)
	assert.False(t, u.Due)
}

func TestTick_IsMonotonic(t *testing.T) {
	u := New("C1", "Breath", 10, newFake())

	prev := u.ElapsedSeconds
	for _, d := range []float64{1, -5, 2, -0.5, 0} {
		u.Tick(d)
		assert.GreaterOrEqual(t, u.ElapsedSeconds, prev)
		prev = u.ElapsedSeconds
	}
	assert.Equal(t, 3.0, u.ElapsedSeconds)
}

func TestTick_CompletesAndClamps(t *testing.T) {
	u := New("C1", "Breath", 10, newFake())
	u.ElapsedSeconds = 600 - 0.5

	assert.True(t, u.Tick(1))
	assert.True(t, u.Due)
	assert.Equal(t, 600.0, u.ElapsedSeconds)

	// already due: no further completion and no movement
	assert.False(t, u.Tick(5))
	assert.Equal(t, 600.0, u.ElapsedSeconds)
	assert.True(t, u.Due)
}

func TestTick_PausedIsNoop(t *testing.T) {
	u := New("C1", "Breath", 10, newFake())
	u.Tick(10)
	u.TogglePause()

	assert.False(t, u.Tick(1000))
	assert.Equal(t, 10.0, u.ElapsedSeconds)

	u.TogglePause()
	assert.False(t, u.Paused)
	assert.Equal(t, 10.0, u.ElapsedSeconds, "toggling pause keeps elapsed time")
}

func TestReset_RecordsCheckIn(t *testing.T) {
	u := New("C1", "Breath", 10, newFake())
	u.Tick(50)
	u.Paused = true

	u.Reset()

	assert.Equal(t, 0.0, u.ElapsedSeconds)
	assert.False(t, u.Paused)
	assert.False(t, u.Due)
	assert.Equal(t, 1, u.CheckInsToday)
	assert.Equal(t, 1, u.History["2024-06-03"])

	u.Reset()
	assert.Equal(t, 2, u.CheckInsToday)
	assert.Equal(t, 2, u.History["2024-06-03"])
}

func TestEndToEnd_TenMinuteInterval(t *testing.T) {
	u := New("C1", "Breath", 10, newFake())

	for i := 0; i < 599; i++ {
		require.False(t, u.Tick(1))
	}
	assert.False(t, u.Due)

	assert.True(t, u.Tick(1))
	assert.True(t, u.Due)
	assert.Equal(t, 600.0, u.ElapsedSeconds)

	before := u.CheckInsToday
	u.Reset()
	assert.Equal(t, 0.0, u.ElapsedSeconds)
	assert.False(t, u.Due)
	assert.Equal(t, before+1, u.CheckInsToday)
	assert.Equal(t, u.CheckInsToday, u.History[u.LastCheckInDate])
}

func TestApplySettings_ReclampsElapsed(t *testing.T) {
	tests := []struct {
		name        string
		elapsed     float64
		minutes     int
		wantElapsed float64
		wantDue     bool
	}{
		{name: "shrink below elapsed makes due", elapsed: 300, minutes: 2, wantElapsed: 120, wantDue: true},
		{name: "grow clears due", elapsed: 600, minutes: 20, wantElapsed: 600, wantDue: false},
		{name: "zero minutes clamps to one", elapsed: 30, minutes: 0, wantElapsed: 30, wantDue: false},
		{name: "negative minutes clamps to one", elapsed: 90, minutes: -4, wantElapsed: 60, wantDue: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := New("C1", "Breath", 10, newFake())
			u.ElapsedSeconds = tt.elapsed
			u.Due = tt.elapsed >= u.IntervalSeconds()

			u.ApplySettings(tt.minutes, "metronome")

			assert.Equal(t, tt.wantElapsed, u.ElapsedSeconds)
			assert.Equal(t, tt.wantDue, u.Due)
			assert.Equal(t, SoundMetronome, u.SoundID)
			assert.GreaterOrEqual(t, u.IntervalMinutes, 1)
		})
	}
}

func TestApplySettings_UnknownSound(t *testing.T) {
	u := New("C1", "Breath", 10, newFake())
	u.ApplySettings(10, "gong")
	assert.Equal(t, SoundChime, u.SoundID)
}

func TestRemainingAndProgress(t *testing.T) {
	u := New("C1", "Breath", 10, newFake())
	assert.Equal(t, 600.0, u.RemainingSeconds())
	assert.Equal(t, 0.0, u.ProgressRatio())

	u.Tick(150)
	assert.Equal(t, 450.0, u.RemainingSeconds())
	assert.InDelta(t, 0.25, u.ProgressRatio(), 1e-9)

	u.IntervalMinutes = 0
	assert.Equal(t, 0.0, u.ProgressRatio())
	assert.Equal(t, 0.0, u.RemainingSeconds())
}

func TestSetLabel(t *testing.T) {
	u := New("C1", "Breath", 10, newFake())
	u.SetLabel("  Posture  ")
	assert.Equal(t, "Posture", u.Label)
	u.SetLabel("   ")
	assert.Equal(t, "Posture", u.Label)
}

func TestToggleExpanded(t *testing.T) {
	u := New("C1", "Breath", 10, newFake())
	u.ToggleExpanded()
	assert.True(t, u.Expanded)
	u.ToggleExpanded()
	assert.False(t, u.Expanded)
}

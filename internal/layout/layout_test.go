package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		width     float64
		count     int
		addButton bool
		want      Arrangement
		scale     float64
	}{
		{name: "narrow single card", width: 300, count: 1, addButton: true, want: Column, scale: 1.2},
		{name: "two cards wide", width: 800, count: 2, addButton: true, want: Row, scale: 1.2},
		{name: "three cards medium stacks", width: 600, count: 3, addButton: false, want: Column, scale: 1.2},
		{name: "three cards at threshold", width: 640, count: 3, addButton: false, want: Row, scale: 616.0 / 3 / 200},
		{name: "two cards just wide enough", width: 500, count: 2, addButton: true, want: Row, scale: 1.07},
		{name: "tiny width floors column", width: 100, count: 1, addButton: false, want: Column, scale: 0.5},
		{name: "six cards crowded", width: 700, count: 6, addButton: true, want: Row, scale: 0.5},
		{name: "six cards roomy", width: 1000, count: 6, addButton: false, want: Row, scale: 940.0 / 6 / 200},
		{name: "zero count treated as one", width: 800, count: 0, addButton: false, want: Row, scale: 1.2},
		{name: "zero width", width: 0, count: 1, addButton: false, want: Column, scale: 0.5},
		{name: "negative width", width: -50, count: 2, addButton: true, want: Column, scale: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.width, tt.count, tt.addButton)
			assert.Equal(t, tt.want, got.Arrangement)
			assert.InDelta(t, tt.scale, got.Scale, 1e-9)
		})
	}
}

func TestCompute_ScaleAlwaysInRange(t *testing.T) {
	for width := 1.0; width <= 3000; width += 7 {
		for count := 1; count <= 6; count++ {
			for _, add := range []bool{true, false} {
				got := Compute(width, count, add)
				if got.Scale < MinScale || got.Scale > MaxScale {
					t.Fatalf("Compute(%v, %d, %v) scale %v out of range", width, count, add, got.Scale)
				}
			}
		}
	}
}

func TestCompute_IsIdempotent(t *testing.T) {
	assert.Equal(t, Compute(733, 3, true), Compute(733, 3, true))
}

func TestCompute_ArrangementThresholds(t *testing.T) {
	assert.Equal(t, Column, Compute(419.9, 1, false).Arrangement)
	assert.Equal(t, Row, Compute(420, 1, false).Arrangement)
	assert.Equal(t, Row, Compute(420, 2, false).Arrangement)
	assert.Equal(t, Column, Compute(639, 3, false).Arrangement)
	assert.Equal(t, Row, Compute(640, 4, true).Arrangement)
}

func TestCardWidth(t *testing.T) {
	assert.Equal(t, 200, CardWidth(1))
	assert.Equal(t, 100, CardWidth(0.5))
	assert.Equal(t, 240, CardWidth(1.2))
	assert.Equal(t, 240, CardWidth(5), "clamped")
	assert.Equal(t, 153, CardWidth(0.765))
}

func TestButtonFontSize(t *testing.T) {
	assert.Equal(t, 14, ButtonFontSize(1))
	assert.Equal(t, 16, ButtonFontSize(1.2))
	assert.Equal(t, 9, ButtonFontSize(0.5))
	assert.Equal(t, 9, ButtonFontSize(0.6))
	assert.Equal(t, 11, ButtonFontSize(0.8))
}

func TestSmooth(t *testing.T) {
	assert.Equal(t, 1.0, Smooth(0.999, 1.0), "snaps when close")

	// |diff| = 0.2 -> step 0.08 + 0.12
	assert.InDelta(t, 0.54, Smooth(0.5, 0.7), 1e-9)

	// large jumps cap the step at 0.33
	assert.InDelta(t, 0.5+0.7*0.33, Smooth(0.5, 1.2), 1e-9)

	// converges
	v := 0.5
	for i := 0; i < 200; i++ {
		v = Smooth(v, 1.2)
	}
	assert.Equal(t, 1.2, v)
}

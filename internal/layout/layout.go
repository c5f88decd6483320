// Package layout maps a container width and card count to an arrangement and
// a per-card scale factor. Compute is pure; animation is left to callers.
package layout

import "math"

type Arrangement string

const (
	Row    Arrangement = "row"
	Column Arrangement = "column"
)

const (
	BaseCardWidth = 200.0
	MinScale      = 0.5
	MaxScale      = 1.2
	Gap           = 12.0

	// widths below these always stack vertically
	narrowWidth = 420.0
	mediumWidth = 640.0

	columnPadding  = 16.0
	minColumnWidth = 100.0
	minRowWidth    = 120.0
	addButtonSlot  = 48.0
	minCardWidth   = 80.0
)

type Result struct {
	Arrangement Arrangement
	Scale       float64
}

// Compute returns the arrangement and card scale for the given container.
// Card counts below one are treated as one.
func Compute(containerWidth float64, cardCount int, addButtonVisible bool) Result {
	if math.IsNaN(containerWidth) || containerWidth < 0 {
		containerWidth = 0
	}
	count := max(cardCount, 1)

	if containerWidth < narrowWidth || (count > 2 && containerWidth < mediumWidth) {
		available := math.Max(minColumnWidth, containerWidth-columnPadding)
		return Result{Arrangement: Column, Scale: clampScale(available / BaseCardWidth)}
	}

	slots := count
	if addButtonVisible {
		slots++
	}
	available := math.Max(minRowWidth, containerWidth-Gap*float64(max(slots-1, 0)))
	cards := available
	if addButtonVisible {
		cards -= addButtonSlot
	}
	cards = math.Max(minCardWidth, cards)
	perCard := math.Max(minCardWidth, cards/float64(count))

	return Result{Arrangement: Row, Scale: clampScale(perCard / BaseCardWidth)}
}

func clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return MinScale
	}
	return math.Max(MinScale, math.Min(s, MaxScale))
}

// CardWidth is the rendered card width at the given scale.
func CardWidth(scale float64) int {
	return int(math.Round(BaseCardWidth * clampScale(scale)))
}

// ButtonFontSize is the point size used for card buttons at the given scale.
func ButtonFontSize(scale float64) int {
	return max(9, int(14*clampScale(scale)))
}

// Smooth moves current one easing step toward target. Large jumps move
// faster; differences under 0.002 snap.
func Smooth(current, target float64) float64 {
	diff := target - current
	if math.Abs(diff) < 0.002 {
		return target
	}
	step := 0.08 + math.Min(0.25, math.Abs(diff)*0.6)
	return current + diff*step
}

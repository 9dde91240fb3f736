package ticks

import (
	"gonum.org/v1/plot"
)

// DefaultPlotLength is the assumed axis length in pixels for plot tickers
// that have not been told better.
const DefaultPlotLength = 600

// TimeTicker adapts an AbsoluteTime generator to gonum's plot.Ticker.
// Values of the plot axis are seconds relative to the generator's epoch.
type TimeTicker struct {
	Generator    *AbsoluteTime
	LengthPixels float64 // DefaultPlotLength if ≤ 0
}

var _ plot.Ticker = TimeTicker{}

// Ticks returns labelled ticks within [min…max].
func (tt TimeTicker) Ticks(min, max float64) []plot.Tick {
	length := tt.LengthPixels
	if length <= 0 {
		length = DefaultPlotLength
	}
	times := tt.Generator.TickPositions(Extent{Lo: min, Hi: max}, length)
	labels := tt.Generator.TickLabels(times)
	ticks := make([]plot.Tick, 0, len(times))
	for i, t := range times {
		v := tt.Generator.Epoch().FromTime(t)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: labels[i]})
	}
	return ticks
}

// GridTicker adapts a Grid generator to gonum's plot.Ticker. Minor ticks
// are returned with empty labels, as gonum expects.
type GridTicker struct {
	Generator    *Grid
	LengthPixels int // DefaultPlotLength if ≤ 0
}

var _ plot.Ticker = GridTicker{}

type plotAxis struct {
	Extent
	size int
}

func (a plotAxis) SizePixels() int { return a.size }

// Ticks returns labelled major ticks and unlabelled minor ticks within
// [min…max].
func (gt GridTicker) Ticks(min, max float64) []plot.Tick {
	size := gt.LengthPixels
	if size <= 0 {
		size = DefaultPlotLength
	}
	axis := plotAxis{Extent: Extent{Lo: min, Hi: max}, size: size}
	major := gt.Generator.TickPositions(axis)
	labels := gt.Generator.TickLabels(axis, major)
	conv := gt.Generator.UnitConverter()
	var ticks []plot.Tick
	add := func(pos float64, label string) {
		v := conv.FromAxisUnits(pos)
		if v >= min && v <= max {
			ticks = append(ticks, plot.Tick{Value: v, Label: label})
		}
	}
	for i, pos := range major {
		add(pos, labels[i])
	}
	for _, pos := range gt.Generator.MinorTickPositions(major) {
		add(pos, "")
	}
	return ticks
}

package ticks

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Defaults of a Grid tick generator.
const (
	DefaultTickSpacing    = 100
	DefaultMinorTickCount = 4
)

// UnitConverter converts between axis values and displayed units.
type UnitConverter interface {
	ToAxisUnits(v float64) float64
	FromAxisUnits(v float64) float64
}

// IdentityConverter displays axis values unchanged.
type IdentityConverter struct{}

// ToAxisUnits returns v.
func (IdentityConverter) ToAxisUnits(v float64) float64 { return v }

// FromAxisUnits returns v.
func (IdentityConverter) FromAxisUnits(v float64) float64 { return v }

// ScaleConverter displays axis values multiplied by Factor.
type ScaleConverter struct {
	Factor float64
}

// ToAxisUnits returns v·Factor.
func (c ScaleConverter) ToAxisUnits(v float64) float64 { return v * c.Factor }

// FromAxisUnits returns v/Factor.
func (c ScaleConverter) FromAxisUnits(v float64) float64 { return v / c.Factor }

// Grid generates uniformly spaced ticks on round decimal values.
//
// For very large or very small values, labels are scaled by a power of
// 1000 and the scale is mentioned in the axis label: ticks at 0.001…0.006
// are labelled 1…6, with "(x 0.001)" appended to the axis label.
type Grid struct {
	tickSpacing    int
	minorTickCount int
	label          string
	units          string
	kiloUnits      string
	milliUnits     string
	converter      UnitConverter
	printer        *message.Printer
}

// NewGrid creates a grid tick generator with default spacing.
func NewGrid() *Grid {
	return &Grid{
		tickSpacing:    DefaultTickSpacing,
		minorTickCount: DefaultMinorTickCount,
		converter:      IdentityConverter{},
		printer:        message.NewPrinter(language.English),
	}
}

// SetTickSpacing sets the approximate tick distance in pixels. Values ≤ 0
// are ignored. Part of builder functionality.
func (g *Grid) SetTickSpacing(px int) *Grid {
	if px > 0 {
		g.tickSpacing = px
	}
	return g
}

// TickSpacing returns the approximate tick distance in pixels.
func (g *Grid) TickSpacing() int { return g.tickSpacing }

// SetMinorTickCount sets the number of minor ticks between major ticks.
// Part of builder functionality.
func (g *Grid) SetMinorTickCount(n int) *Grid {
	if n >= 0 {
		g.minorTickCount = n
	}
	return g
}

// MinorTickCount returns the number of minor ticks between major ticks.
func (g *Grid) MinorTickCount() int { return g.minorTickCount }

// SetAxisLabel sets the base text of the axis label. Part of builder
// functionality.
func (g *Grid) SetAxisLabel(label string) *Grid {
	g.label = label
	return g
}

// SetAxisUnits sets the units of the axis, deriving milli and kilo units
// by prefix ("m"/"k" if abbreviated, "milli"/"kilo" otherwise). Part of
// builder functionality.
func (g *Grid) SetAxisUnits(units string, abbreviated bool) *Grid {
	if abbreviated {
		return g.SetAxisUnitNames("m"+units, units, "k"+units)
	}
	return g.SetAxisUnitNames("milli"+units, units, "kilo"+units)
}

// SetAxisUnitNames sets the names of the axis units explicitly. Part of
// builder functionality.
func (g *Grid) SetAxisUnitNames(milli, units, kilo string) *Grid {
	g.milliUnits, g.units, g.kiloUnits = milli, units, kilo
	return g
}

// AxisUnits returns the units of the axis.
func (g *Grid) AxisUnits() string { return g.units }

// SetUnitConverter sets the conversion between axis values and displayed
// units. nil restores the identity. Part of builder functionality.
func (g *Grid) SetUnitConverter(c UnitConverter) *Grid {
	if c == nil {
		c = IdentityConverter{}
	}
	g.converter = c
	return g
}

// UnitConverter returns the conversion in use.
func (g *Grid) UnitConverter() UnitConverter { return g.converter }

// === Ticks =================================================================

// TickPositions returns major tick positions (in displayed units) covering
// the axis range. For a reversed range the ticks are in descending order.
// An axis without pixel size or with an empty range has no ticks.
func (g *Grid) TickPositions(axis Axis) []float64 {
	if axis.SizePixels() <= 0 {
		return nil
	}
	interval := g.tickInterval(axis)
	if interval <= 0 || math.IsNaN(interval) || math.IsInf(interval, 0) {
		return nil
	}
	lo, hi := g.converter.ToAxisUnits(axis.Min()), g.converter.ToAxisUnits(axis.Max())
	reversed := lo >= hi
	if reversed {
		lo, hi = hi, lo
	}
	first := math.Floor(lo / interval)
	count := int(math.Ceil((hi-lo)/interval)) + 1
	ticks := make([]float64, count)
	for i := range ticks {
		ticks[i] = (float64(i) + first) * interval
	}
	if reversed {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	tracer().Debugf("grid ticks: interval %g, %d ticks", interval, count)
	return ticks
}

// tickInterval returns a round tick interval (1, 2 or 5 times a power of
// ten) giving approximately one tick per tickSpacing pixels.
func (g *Grid) tickInterval(axis Axis) float64 {
	approxTicks := float64(axis.SizePixels()) / float64(g.tickSpacing)
	lo, hi := g.converter.ToAxisUnits(axis.Min()), g.converter.ToAxisUnits(axis.Max())
	span := math.Abs(hi - lo)
	if span == 0 {
		return 0
	}
	prelim := math.Pow(10, math.Round(math.Log10(span/approxTicks)))
	prelimTicks := span / prelim
	switch {
	case prelimTicks >= 5*approxTicks:
		return prelim * 5
	case prelimTicks >= 2*approxTicks:
		return prelim * 2
	case 5*prelimTicks <= approxTicks:
		return prelim / 5
	case 2*prelimTicks <= approxTicks:
		return prelim / 2
	}
	return prelim
}

// MinorTickPositions returns minor ticks between, before and after the
// given (evenly spaced) major ticks.
func (g *Grid) MinorTickPositions(major []float64) []float64 {
	if len(major) < 2 || g.minorTickCount == 0 {
		return nil
	}
	step := (major[1] - major[0]) / float64(g.minorTickCount+1)
	minor := make([]float64, 0, (len(major)+1)*g.minorTickCount)
	for _, t := range major {
		for j := 1; j <= g.minorTickCount; j++ {
			minor = append(minor, t-step*float64(j))
		}
	}
	last := major[len(major)-1]
	for j := 1; j <= g.minorTickCount; j++ {
		minor = append(minor, last+step*float64(j))
	}
	return minor
}

// TickLabels formats tick positions, scaled by the order of the axis.
func (g *Grid) TickLabels(axis Axis, ticks []float64) []string {
	orderAxis := g.orderAxis(axis)
	orderTick := magnitude(g.tickInterval(axis))
	fractionDigits := max(0, orderAxis-orderTick)
	factor := math.Pow(10, float64(-orderAxis))
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		v := t * factor
		if v == 0 {
			v = 0 // no "-0"
		}
		labels[i] = g.printer.Sprint(number.Decimal(v,
			number.MaxFractionDigits(fractionDigits),
			number.NoSeparator()))
	}
	return labels
}

// orderAxis is the order of magnitude of the axis span, rounded towards
// zero to a multiple of 3.
func (g *Grid) orderAxis(axis Axis) int {
	lo, hi := g.converter.ToAxisUnits(axis.Min()), g.converter.ToAxisUnits(axis.Max())
	order := magnitude(math.Abs(hi - lo))
	switch {
	case order > 0:
		return 3 * ((order - 1) / 3)
	case order < 0:
		return 3 * (order/3 - 1)
	}
	return 0
}

// AxisLabel returns the axis label including units and scale.
func (g *Grid) AxisLabel(axis Axis) string {
	return g.axisLabel(g.orderAxis(axis))
}

func (g *Grid) axisLabel(order int) string {
	pad := ""
	if g.label != "" {
		pad = " "
	}
	if g.units == "" {
		switch order {
		case 0:
			return g.label
		case 3:
			return g.label + pad + "(x 1,000)"
		case -3:
			return g.label + pad + "(x 0.001)"
		}
		return g.label + pad + "(x 10^" + strconv.Itoa(order) + ")"
	}
	switch {
	case order == 0:
		return g.label + pad + "(" + g.units + ")"
	case order == 3:
		return g.label + pad + "(" + g.kiloUnits + ")"
	case order == -3:
		return g.label + pad + "(" + g.milliUnits + ")"
	case order > 3:
		power := int(math.Pow(10, float64(order-3)))
		return g.label + pad + "(x " + g.printer.Sprint(number.Decimal(power)) + " " + g.kiloUnits + ")"
	}
	return g.label + pad + "(x 10^" + strconv.Itoa(order) + " " + g.units + ")"
}

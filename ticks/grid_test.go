package ticks

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAxis struct {
	lo, hi float64
	size   int
}

func (a testAxis) Min() float64    { return a.lo }
func (a testAxis) Max() float64    { return a.hi }
func (a testAxis) SizePixels() int { return a.size }

func TestGridTicks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := NewGrid()
	axis := testAxis{0, 10, 500}
	positions := g.TickPositions(axis)
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, positions)
	assert.Equal(t, []string{"0", "2", "4", "6", "8", "10"}, g.TickLabels(axis, positions))
	assert.Equal(t, "", g.AxisLabel(axis))
	g.SetAxisLabel("Depth")
	assert.Equal(t, "Depth", g.AxisLabel(axis))
	g.SetAxisUnits("m", true)
	assert.Equal(t, "Depth (m)", g.AxisLabel(axis))
}

func TestGridReversedAndEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := NewGrid()
	assert.Equal(t, []float64{10, 8, 6, 4, 2, 0}, g.TickPositions(testAxis{10, 0, 500}))
	assert.Empty(t, g.TickPositions(testAxis{0, 10, 0}))
	assert.Empty(t, g.TickPositions(testAxis{3, 3, 500}))
}

func TestGridIntervals(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := NewGrid()
	assert.Equal(t, []float64{0, 1000, 2000, 3000, 4000, 5000}, g.TickPositions(testAxis{0, 5000, 500}))
	g.SetTickSpacing(50)
	assert.Equal(t, 11, len(g.TickPositions(testAxis{0, 5000, 500})))
}

func TestGridOrderOfMagnitude(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := NewGrid()
	kilo := testAxis{0, 50000, 500}
	positions := g.TickPositions(kilo)
	assert.Equal(t, []string{"0", "10", "20", "30", "40", "50"}, g.TickLabels(kilo, positions))
	assert.Equal(t, "(x 1,000)", g.AxisLabel(kilo))

	milli := testAxis{0, 0.05, 500}
	assert.Equal(t, []string{"0", "10", "20"}, g.TickLabels(milli, []float64{0, 0.01, 0.02}))
	assert.Equal(t, "(x 0.001)", g.AxisLabel(milli))

	mega := testAxis{0, 5e7, 500}
	assert.Equal(t, "(x 10^6)", g.AxisLabel(mega))
	g.SetAxisUnits("m", true)
	assert.Equal(t, "(km)", g.AxisLabel(kilo))
	assert.Equal(t, "(mm)", g.AxisLabel(milli))
	assert.Equal(t, "(x 1,000 km)", g.AxisLabel(mega))
	g.SetAxisUnits("meters", false)
	assert.Equal(t, "(kilometers)", g.AxisLabel(kilo))
}

func TestGridFractionDigits(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := NewGrid()
	axis := testAxis{0, 1, 500}
	positions := g.TickPositions(axis)
	require.NotEmpty(t, positions)
	labels := g.TickLabels(axis, []float64{0, 0.2, 0.4})
	assert.Equal(t, []string{"0", "0.2", "0.4"}, labels)
}

func TestGridMinorTicks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := NewGrid()
	minor := g.MinorTickPositions([]float64{0, 2, 4})
	require.Len(t, minor, 16)
	assert.InDelta(t, -0.4, minor[0], 1e-12)
	assert.InDelta(t, 1.6, minor[4], 1e-12)
	assert.InDelta(t, 5.6, minor[15], 1e-12)
	assert.Empty(t, g.MinorTickPositions([]float64{1}))
	assert.Empty(t, g.SetMinorTickCount(0).MinorTickPositions([]float64{0, 2}))
}

func TestGridUnitConverter(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := NewGrid().SetUnitConverter(ScaleConverter{Factor: 1000})
	positions := g.TickPositions(testAxis{0, 0.01, 500})
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, positions)
	g.SetUnitConverter(nil)
	assert.Equal(t, IdentityConverter{}, g.UnitConverter())
}

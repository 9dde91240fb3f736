package ticks

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyConfigIsDefault(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	conf, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), conf)
	gen, err := conf.Handler()
	require.NoError(t, err)
	assert.Equal(t, DefaultPixelsBetweenTicks, gen.PixelsBetweenTicks())
	assert.Equal(t, time.UTC, gen.TimeZone())
}

func TestLoadConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := `
epoch: 2024-01-01T00:00:00Z
timezone: Europe/Vienna
pixels_between_ticks: 80
formats:
  hour_minute: "%H.%m"
grid:
  tick_spacing: 50
  label: Depth
  units: m
  abbreviated: true
`
	conf, err := LoadConfig(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "%H.%m", conf.Formats.HourMinute)
	assert.Equal(t, "%d", conf.Formats.Day, "unset formats keep their defaults")
	assert.Equal(t, DefaultYearOrderFactor, conf.YearOrderFactor)

	gen, err := conf.Handler()
	require.NoError(t, err)
	assert.True(t, gen.Epoch().Time().Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Europe/Vienna", gen.TimeZone().String())
	assert.Equal(t, 80.0, gen.PixelsBetweenTicks())
	// midnight UTC is 01:00 in Vienna
	labels := gen.TickLabels([]time.Time{gen.Epoch().Time(), gen.Epoch().Time().Add(time.Hour)})
	assert.Equal(t, "01.00", labels[0])

	grid := conf.GridHandler()
	assert.Equal(t, 50, grid.TickSpacing())
	assert.Equal(t, "Depth (m)", grid.AxisLabel(testAxis{0, 10, 500}))
}

func TestInvalidConfig(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for doc, sentinel := range map[string]error{
		"pixels_between_ticks: -1":    ErrInvalidConfig,
		"year_order_factor: 0":        ErrInvalidConfig,
		"grid:\n  tick_spacing: -5":   ErrInvalidConfig,
		"formats:\n  day: \"%q\"":     ErrInvalidConfig,
		"epoch: [1":                   ErrInvalidConfig,
		"timezone: Mars/Olympus_Mons": ErrUnknownZone,
	} {
		_, err := LoadConfig(strings.NewReader(doc))
		assert.ErrorIs(t, err, sentinel, doc)
	}
}

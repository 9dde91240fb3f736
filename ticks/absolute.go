package ticks

import (
	"fmt"
	"math"
	"time"
)

// Defaults of an AbsoluteTime tick generator.
const (
	DefaultPixelsBetweenTicks = 60.0
	DefaultYearOrderFactor    = 6.0
)

const (
	secondsPerMinute = 60.0
	secondsPerHour   = 3600.0
	secondsPerDay    = 86400.0
	daysPerYear      = 365.25 // heuristic for the year tier
)

// dayRungs are the candidate tick intervals (in days) of the day tier.
var dayRungs = []int{2, 3, 4, 5, 8, 10}

// secondRungs are the candidate tick intervals (in seconds) for ticks less
// than a day apart.
var secondRungs = []int{
	1, 2, 5, 10, 15, 20, 30,
	60, 120, 300, 600, 900, 1200, 1800,
	3600, 7200, 10800, 21600, 43200,
	86400,
}

// LabelFormats holds the timestamp patterns of an AbsoluteTime generator.
// The first five are tick label formats, selected by the tick interval;
// the remaining three label the calendar bands of TimeStructs.
type LabelFormats struct {
	MinuteSecond string `yaml:"minute_second"`  // interval < 1 min
	HourMinute   string `yaml:"hour_minute"`    // interval ≤ 12 h
	Day          string `yaml:"day"`            // interval ≤ 10 d
	Month        string `yaml:"month"`          // interval ≤ 60 d
	Year         string `yaml:"year"`           // otherwise
	HourDayMonth string `yaml:"hour_day_month"` // hour bands
	DayMonthYear string `yaml:"day_month_year"` // day bands
	MonthYear    string `yaml:"month_year"`     // month bands
}

// DefaultLabelFormats returns the standard label formats.
func DefaultLabelFormats() LabelFormats {
	return LabelFormats{
		MinuteSecond: "%m:%S",
		HourMinute:   "%H:%m",
		Day:          "%d",
		Month:        "%3N",
		Year:         "%y",
		HourDayMonth: "%d %3N %H:00 ",
		DayMonthYear: "%d %3N %y",
		MonthYear:    "%3N %y",
	}
}

type compiledFormats struct {
	minuteSecond, hourMinute, day, month, year *Format
	hourDayMonth, dayMonthYear, monthYear      *Format
}

func (lf LabelFormats) compile() (compiledFormats, error) {
	var cf compiledFormats
	targets := []struct {
		f       **Format
		pattern string
	}{
		{&cf.minuteSecond, lf.MinuteSecond},
		{&cf.hourMinute, lf.HourMinute},
		{&cf.day, lf.Day},
		{&cf.month, lf.Month},
		{&cf.year, lf.Year},
		{&cf.hourDayMonth, lf.HourDayMonth},
		{&cf.dayMonthYear, lf.DayMonthYear},
		{&cf.monthYear, lf.MonthYear},
	}
	for _, t := range targets {
		f, err := ParseFormat(t.pattern)
		if err != nil {
			return cf, err
		}
		*t.f = f
	}
	return cf, nil
}

// AbsoluteTime generates ticks for time axes. Axis values are seconds
// relative to an epoch.
//
// Ticks a day or more apart are placed on calendar boundaries (years,
// months, days) in UTC. Shorter intervals are aligned to round multiples
// in the display time zone. Labels and calendar bands are rendered in the
// display time zone.
type AbsoluteTime struct {
	epoch              Epoch
	zone               *time.Location
	pixelsBetweenTicks float64
	yearOrderFactor    float64
	formats            LabelFormats
	compiled           compiledFormats
}

// NewAbsoluteTime creates a tick generator for axes relative to epoch,
// labelling in time zone zone (UTC, if zone is nil).
func NewAbsoluteTime(epoch Epoch, zone *time.Location) *AbsoluteTime {
	if zone == nil {
		zone = time.UTC
	}
	at := &AbsoluteTime{
		epoch:              epoch,
		zone:               zone,
		pixelsBetweenTicks: DefaultPixelsBetweenTicks,
		yearOrderFactor:    DefaultYearOrderFactor,
	}
	if err := at.SetLabelFormats(DefaultLabelFormats()); err != nil {
		panic(err) // default formats are constant
	}
	return at
}

// SetEpoch changes the reference instant. Part of builder functionality.
func (at *AbsoluteTime) SetEpoch(epoch Epoch) *AbsoluteTime {
	at.epoch = epoch
	return at
}

// Epoch returns the reference instant of axis values.
func (at *AbsoluteTime) Epoch() Epoch {
	return at.epoch
}

// SetTimeZone changes the display time zone. Part of builder functionality.
func (at *AbsoluteTime) SetTimeZone(zone *time.Location) *AbsoluteTime {
	if zone == nil {
		zone = time.UTC
	}
	at.zone = zone
	return at
}

// TimeZone returns the display time zone.
func (at *AbsoluteTime) TimeZone() *time.Location {
	return at.zone
}

// SetPixelsBetweenTicks sets the desired tick distance in pixels. Values
// ≤ 0 are ignored. Part of builder functionality.
func (at *AbsoluteTime) SetPixelsBetweenTicks(px float64) *AbsoluteTime {
	if px > 0 {
		at.pixelsBetweenTicks = px
	}
	return at
}

// PixelsBetweenTicks returns the desired tick distance in pixels.
func (at *AbsoluteTime) PixelsBetweenTicks() float64 {
	return at.pixelsBetweenTicks
}

// SetYearOrderFactor scales the approximate year interval before it is
// rounded to a power of ten. Values ≤ 0 are ignored. Part of builder
// functionality.
func (at *AbsoluteTime) SetYearOrderFactor(f float64) *AbsoluteTime {
	if f > 0 {
		at.yearOrderFactor = f
	}
	return at
}

// YearOrderFactor returns the year order factor.
func (at *AbsoluteTime) YearOrderFactor() float64 {
	return at.yearOrderFactor
}

// SetLabelFormats replaces all label formats. If a pattern is malformed,
// the formats are left unchanged.
func (at *AbsoluteTime) SetLabelFormats(lf LabelFormats) error {
	cf, err := lf.compile()
	if err != nil {
		return err
	}
	at.formats, at.compiled = lf, cf
	return nil
}

// LabelFormats returns the label formats in use.
func (at *AbsoluteTime) LabelFormats() LabelFormats {
	return at.formats
}

// === Tick Positions ========================================================

// TickPositions returns the tick instants for range r drawn onto
// axisLengthPixels pixels. An empty range or a length ≤ 0 yields no ticks.
// The first tick may lie before the start of the range, and ticks of the
// day tier may lie beyond its end.
func (at *AbsoluteTime) TickPositions(r Range, axisLengthPixels float64) []time.Time {
	if axisLengthPixels <= 0 || !(r.Max() > r.Min()) {
		return nil
	}
	t0, t1 := at.epoch.ToTime(r.Min()), at.epoch.ToTime(r.Max())
	approx := at.pixelsBetweenTicks * (r.Max() - r.Min()) / axisLengthPixels
	switch {
	case approx > 60*secondsPerDay:
		tracer().Debugf("time ticks: year tier, approx. interval %.0fs", approx)
		return at.yearTicks(t0, t1, approx)
	case approx > 10*secondsPerDay:
		tracer().Debugf("time ticks: month tier, approx. interval %.0fs", approx)
		return monthTicks(t0, t1)
	case approx > secondsPerDay:
		tracer().Debugf("time ticks: day tier, approx. interval %.0fs", approx)
		return dayTicks(t0, t1, DayInterval(approx))
	}
	tracer().Debugf("time ticks: second tier, approx. interval %.0fs", approx)
	return at.secondTicks(t0, t1, SecondInterval(approx))
}

// TickValues returns the tick positions of an axis as axis values.
func (at *AbsoluteTime) TickValues(axis Axis) []float64 {
	if axis.SizePixels() <= 0 {
		return nil
	}
	ticks := at.TickPositions(axis, float64(axis.SizePixels()))
	values := make([]float64, len(ticks))
	for i, t := range ticks {
		values[i] = at.epoch.FromTime(t)
	}
	return values
}

func (at *AbsoluteTime) yearTicks(t0, t1 time.Time, approx float64) []time.Time {
	approxYears := approx / secondsPerDay / daysPerYear
	step := YearStep(approxYears * at.yearOrderFactor)
	year := RoundedYear(t0.UTC().Year(), step)
	var ticks []time.Time
	for {
		t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		if t.After(t1) {
			return ticks
		}
		ticks = append(ticks, t)
		year += step
	}
}

func monthTicks(t0, t1 time.Time) []time.Time {
	var ticks []time.Time
	for t := firstOfMonth(t0.UTC()); !t.After(t1); t = t.AddDate(0, 1, 0) {
		ticks = append(ticks, t)
	}
	return ticks
}

// dayTicks places a tick every interval days, restarting at the first day
// of every month. Ticks too close to the end of a month are suppressed.
func dayTicks(t0, t1 time.Time, interval int) []time.Time {
	end := t1.AddDate(0, 0, interval)
	t := firstOfMonth(t0.UTC())
	month := t.Month()
	var ticks []time.Time
	for !t.After(end) {
		if t.Month() != month {
			t = firstOfMonth(t)
			month = t.Month()
		}
		if daysInMonth(t)-t.Day()+1 >= interval/2 {
			ticks = append(ticks, t)
		}
		t = t.AddDate(0, 0, interval)
	}
	return ticks
}

// secondTicks aligns ticks to multiples of interval seconds in the display
// time zone, using the zone offset at t0.
func (at *AbsoluteTime) secondTicks(t0, t1 time.Time, interval int) []time.Time {
	_, off := t0.In(at.zone).Zone()
	step, offset := float64(interval), float64(off)
	first := math.Floor((posixSeconds(t0)+offset)/step)*step - offset
	n := int(math.Ceil(1 + (posixSeconds(t1)-first)/step))
	ticks := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		ticks = append(ticks, fromPosixSeconds(first+float64(i)*step))
	}
	return ticks
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// === Interval Helpers ======================================================

// YearStep rounds a span of years to a power of ten, at least 1. Spans
// within 1e-12 (in log space) below a power of ten round up to it.
func YearStep(spanYears float64) int {
	order := magnitude(spanYears)
	return int(math.Max(1, math.Pow(10, float64(order))))
}

// RoundedYear truncates year to a multiple of step.
func RoundedYear(year, step int) int {
	return (year / step) * step
}

// DayInterval returns the smallest day rung covering an approximate tick
// interval (in seconds), or 10.
func DayInterval(approxSeconds float64) int {
	days := approxSeconds / secondsPerDay
	for _, r := range dayRungs {
		if days <= float64(r) {
			return r
		}
	}
	return 10
}

// SecondInterval returns the smallest second rung covering an approximate
// tick interval (in seconds), or one day.
func SecondInterval(approxSeconds float64) int {
	for _, r := range secondRungs {
		if approxSeconds <= float64(r) {
			return r
		}
	}
	return int(secondsPerDay)
}

// magnitude is the decimal order of magnitude of d, with values within
// 1e-12 of the next order rounded up.
func magnitude(d float64) int {
	if d == 0 {
		return 0
	}
	lg := math.Log10(d)
	order := int(math.Floor(lg))
	if lg-float64(order) > 1.0-1e-12 {
		order++
	}
	return order
}

// === Labels ================================================================

// TickInterval returns the observed distance between the first two ticks,
// or one second for fewer than two ticks.
func TickInterval(ticks []time.Time) time.Duration {
	if len(ticks) < 2 {
		return time.Second
	}
	return ticks[1].Sub(ticks[0])
}

// TickLabels formats tick instants in the display time zone. The format
// depends on the observed tick interval.
func (at *AbsoluteTime) TickLabels(ticks []time.Time) []string {
	f := at.tickFormat(TickInterval(ticks))
	labels := make([]string, len(ticks))
	for i, t := range ticks {
		labels[i] = f.Format(t.In(at.zone))
	}
	return labels
}

func (at *AbsoluteTime) tickFormat(interval time.Duration) *Format {
	switch {
	case interval < time.Minute:
		return at.compiled.minuteSecond
	case interval <= 12*time.Hour:
		return at.compiled.hourMinute
	case interval <= 10*24*time.Hour:
		return at.compiled.day
	case interval <= 60*24*time.Hour:
		return at.compiled.month
	}
	return at.compiled.year
}

func (at *AbsoluteTime) String() string {
	return fmt.Sprintf("AbsoluteTime[epoch=%v, zone=%s]", at.epoch, at.zone)
}

package ticks

import (
	"math"
	"time"
)

// TimeStruct is a calendar band (an hour, a day, a month or a year) behind
// the ticks of a time axis, as drawn by renderers showing a second label
// row.
type TimeStruct struct {
	Start, End         time.Time // [Start, End) of the calendar unit
	ViewStart, ViewEnd time.Time // the part visible on the axis
	TextCenter         time.Time // where to center the label
	Text               string
}

// Duration returns the visible duration of the band.
func (ts TimeStruct) Duration() time.Duration {
	return ts.ViewEnd.Sub(ts.ViewStart)
}

// calendarUnit truncates an instant to the start of its unit and advances
// to the start of the next one.
type calendarUnit struct {
	truncate func(time.Time) time.Time
	next     func(time.Time) time.Time
}

var (
	hourUnit = calendarUnit{
		truncate: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
		},
		next: func(t time.Time) time.Time { return t.Add(time.Hour) },
	}
	dayUnit = calendarUnit{
		truncate: func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		},
		next: func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
	}
	monthUnit = calendarUnit{
		truncate: firstOfMonth,
		next:     func(t time.Time) time.Time { return t.AddDate(0, 1, 0) },
	}
	yearUnit = calendarUnit{
		truncate: func(t time.Time) time.Time {
			return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
		},
		next: func(t time.Time) time.Time { return t.AddDate(1, 0, 0) },
	}
)

// TimeStructs returns the calendar bands behind ticks, for an axis
// showing range r. The unit of the bands is chosen by the observed tick
// interval: hours up to 1 min, days up to 12 h, months up to 10 d, years
// up to 60 d. Wider intervals yield no bands. Bands are computed in the
// display time zone; ticks falling into the same band produce it once.
//
// The label of a band is centered on its visible part. The smaller a
// band's visible part compared to the widest band, the further its label
// is moved towards the visible edge of the band.
func (at *AbsoluteTime) TimeStructs(r Range, ticks []time.Time) []TimeStruct {
	var unit calendarUnit
	var format *Format
	switch interval := TickInterval(ticks); {
	case interval <= time.Minute:
		unit, format = hourUnit, at.compiled.hourDayMonth
	case interval <= 12*time.Hour:
		unit, format = dayUnit, at.compiled.dayMonthYear
	case interval <= 10*24*time.Hour:
		unit, format = monthUnit, at.compiled.monthYear
	case interval <= 60*24*time.Hour:
		unit, format = yearUnit, at.compiled.year
	default:
		return nil
	}
	viewStart := at.epoch.ToTime(r.Min()).In(at.zone)
	viewEnd := at.epoch.ToTime(r.Max()).In(at.zone)
	structs := make([]TimeStruct, 0, len(ticks))
	var maxDuration time.Duration
	var previous time.Time
	for i, t := range ticks {
		start := unit.truncate(t.In(at.zone))
		if i > 0 && start.Equal(previous) {
			continue
		}
		previous = start
		end := unit.next(start)
		ts := TimeStruct{
			Start:     start,
			End:       end,
			ViewStart: clampTime(viewStart, start, end),
			ViewEnd:   clampTime(viewEnd, start, end),
		}
		if d := ts.Duration(); d > maxDuration {
			maxDuration = d
		}
		structs = append(structs, ts)
	}
	for i := range structs {
		ts := &structs[i]
		d := ts.Duration()
		mid := ts.ViewStart.Add(d / 2)
		edge := ts.ViewStart
		if ts.ViewStart.Equal(ts.Start) {
			edge = ts.ViewEnd
		}
		edginess := 0.0
		if maxDuration > 0 {
			edginess = 1 - math.Max(0, math.Min(1, float64(d)/float64(maxDuration)))
		}
		ts.TextCenter = mid.Add(time.Duration(edginess * float64(edge.Sub(mid))))
		ts.Text = format.Format(ts.TextCenter)
	}
	return structs
}

func clampTime(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}

package ticks

import (
	"math"
	"time"
)

// Epoch is the reference instant of a time axis. Axis values are seconds
// relative to the epoch.
type Epoch struct {
	ref time.Time
}

// PosixEpoch is 1970-01-01T00:00:00Z.
var PosixEpoch = NewEpoch(time.Unix(0, 0))

// NewEpoch creates an epoch at instant ref.
func NewEpoch(ref time.Time) Epoch {
	return Epoch{ref: ref.UTC()}
}

// Time returns the reference instant.
func (e Epoch) Time() time.Time {
	return e.ref
}

// ToTime converts an axis value into an instant (in UTC).
func (e Epoch) ToTime(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(e.ref.Unix()+int64(sec), int64(e.ref.Nanosecond())+int64(math.Round(frac*1e9))).UTC()
}

// FromTime converts an instant into an axis value.
func (e Epoch) FromTime(t time.Time) float64 {
	return float64(t.Unix()-e.ref.Unix()) + float64(t.Nanosecond()-e.ref.Nanosecond())/1e9
}

func (e Epoch) String() string {
	return e.ref.Format(time.RFC3339Nano)
}

// posixSeconds returns t as fractional seconds since 1970.
func posixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// fromPosixSeconds is the inverse of posixSeconds.
func fromPosixSeconds(s float64) time.Time {
	return PosixEpoch.ToTime(s)
}

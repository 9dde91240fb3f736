/*
Package ticks computes tick marks, tick labels and calendar bands for
axes. AbsoluteTime places ticks on round calendar boundaries for axes
whose values are seconds relative to an Epoch; Grid places ticks on round
decimal values for plain numeric axes.

Tick generators only read an axis: anything providing its range (and, for
axis-driven calls, its pixel size) will do, in particular *axes.Axis1D.
Adapters for gonum's plot.Ticker interface are provided.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package ticks

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'axes.ticks'
func tracer() tracing.Trace {
	return tracing.Select("axes.ticks")
}

var (
	// ErrInvalidFormat is returned for malformed timestamp format patterns.
	ErrInvalidFormat = errors.New("invalid timestamp format")
	// ErrInvalidConfig is returned for configurations with unusable values.
	ErrInvalidConfig = errors.New("invalid tick configuration")
	// ErrUnknownZone is returned for time zone names the system cannot resolve.
	ErrUnknownZone = errors.New("unknown time zone")
)

// Range is the value range of an axis.
type Range interface {
	Min() float64
	Max() float64
}

// Axis is a value range with a pixel extent.
type Axis interface {
	Range
	SizePixels() int
}

// Extent is a plain value range, for callers without an axis at hand.
type Extent struct {
	Lo, Hi float64
}

// Min returns the lower end of the extent.
func (e Extent) Min() float64 { return e.Lo }

// Max returns the upper end of the extent.
func (e Extent) Max() float64 { return e.Hi }

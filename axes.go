/*
Package axes implements linked numeric axes, tagged axes with
constraints on their tags, and the small amount of planar arithmetic
renderers need to project axis values onto pixels.

An Axis1D is a numeric range mapped onto a pixel extent. Axes may be
linked into a hierarchy by parent pointers; validating an axis broadcasts
its state through the hierarchy. A TaggedAxis1D additionally manages a
set of named markers (tags) which are kept consistent by constraints.

All operations are synchronous. Axes are not safe for concurrent use;
callers sharing axes between goroutines must serialize mutations.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package axes

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'axes'
func tracer() tracing.Trace {
	return tracing.Select("axes")
}

// === Numeric Helpers =======================================================

// Epsilon : spans below ε are considered empty
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// tweakUp is a numerical fix to ensure that tick marks for the start and
// end point of an axis are visible when they should be.
func tweakUp(val float64) float64 {
	return math.Nextafter(val, math.Inf(1))
}

// === Pair Data Type ========================================================

// Pair is a 2D point, either in value space or in pixel space.
type Pair complex128

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// IsNaN is a predicate: does any coordinate of p hold NaN?
func (p Pair) IsNaN() bool {
	return cmplx.IsNaN(complex128(p))
}

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", p.X(), p.Y())
}

// === Affine Transformations ================================================

// AT is an affine transform, used for projecting value space onto pixel
// space and back.
type AT []float64 // a 3x3 matrix, flattened by rows

func newAT() AT {
	return make([]float64, 9)
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	return []float64{m[col], m[3+col], m[6+col]}
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Scaling transform. Scale a point by sx horizontally and by sy vertically.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	return fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}

func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2]
}

// Combine 2 affine transformations to a new one: n is applied after m.
// Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Invert returns the inverse of an affine transform. The second return
// value is false if m is singular, i.e. one of its scales is zero.
func (m AT) Invert() (AT, bool) {
	a, b, c := m.get(0, 0), m.get(0, 1), m.get(0, 2)
	d, e, f := m.get(1, 0), m.get(1, 1), m.get(1, 2)
	det := a*e - b*d
	if det == 0 || math.IsNaN(det) {
		return nil, false
	}
	o := newAT()
	o.set(0, 0, e/det)
	o.set(0, 1, -b/det)
	o.set(0, 2, (b*f-c*e)/det)
	o.set(1, 0, -d/det)
	o.set(1, 1, a/det)
	o.set(1, 2, (c*d-a*f)/det)
	o.set(2, 2, 1.0)
	return o, true
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	v := []float64{p.X(), p.Y(), 1.0}
	return P(dotProd(m.row(0), v), dotProd(m.row(1), v))
}

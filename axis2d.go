package axes

import "math"

// Axis2D pairs a horizontal and a vertical axis.
type Axis2D struct {
	x, y *Axis1D
}

// NewAxis2D creates a pair of default axes.
func NewAxis2D() *Axis2D {
	return &Axis2D{x: NewAxis1D(nil), y: NewAxis1D(nil)}
}

// NewAxis2DFrom combines two existing axes. Either may be a tagged axis'
// range part.
func NewAxis2DFrom(x, y *Axis1D) *Axis2D {
	return &Axis2D{x: x, y: y}
}

// X returns the horizontal axis.
func (a *Axis2D) X() *Axis1D { return a.x }

// Y returns the vertical axis.
func (a *Axis2D) Y() *Axis1D { return a.y }

// SetParent links both axes to the corresponding axes of parent.
func (a *Axis2D) SetParent(parent *Axis2D) {
	if parent == nil {
		a.x.SetParent(nil)
		a.y.SetParent(nil)
		return
	}
	a.x.SetParent(parent.x)
	a.y.SetParent(parent.y)
}

// SetSizePixels resizes both axes.
func (a *Axis2D) SetSizePixels(width, height int) {
	a.x.SetSizePixels(width)
	a.y.SetSizePixels(height)
}

// Validate validates both axes.
func (a *Axis2D) Validate() {
	a.x.Validate()
	a.y.Validate()
}

// LockAspectRatio keeps the vertical scale at ratio times the horizontal
// scale, and vice versa.
func (a *Axis2D) LockAspectRatio(ratio float64) {
	a.x.LockAspectRatio(a.y, ratio)
	a.y.LockAspectRatio(a.x, 1/ratio)
}

// UnlockAspectRatio removes an aspect ratio lock.
func (a *Axis2D) UnlockAspectRatio() {
	a.x.UnlockAspectRatio()
	a.y.UnlockAspectRatio()
}

// Projection returns the transform from value space to pixel space, with
// the origin of pixel space at (x.min, y.min).
func (a *Axis2D) Projection() AT {
	return Translation(P(-a.x.Min(), -a.y.Min())).
		Combine(Scaling(a.x.PixelsPerValue(), a.y.PixelsPerValue()))
}

// ValueToPixel projects a point in value space onto pixel space.
func (a *Axis2D) ValueToPixel(v Pair) Pair {
	return a.Projection().Transform(v)
}

// PixelToValue maps a point in pixel space back onto value space. For a
// degenerate projection the result holds NaN.
func (a *Axis2D) PixelToValue(p Pair) Pair {
	inv, ok := a.Projection().Invert()
	if !ok {
		return P(math.NaN(), math.NaN())
	}
	return inv.Transform(p)
}

func (a *Axis2D) String() string {
	return "X" + a.x.String() + " Y" + a.y.String()
}

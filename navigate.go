package axes

import "math"

// ZoomConstant is the zoom factor applied per wheel increment.
const ZoomConstant = 1.12

// Pan drags the axis: anchorMin is the axis min at the moment the drag
// started at anchorPixel, pixel is the current drag position. Only the
// setters are called; the caller validates the axis.
func Pan(axis *Axis1D, anchorMin float64, anchorPixel, pixel int) {
	if axis == nil {
		panic("cannot pan nil axis")
	}
	panPixels := float64(anchorPixel - pixel)
	newMin := anchorMin + panPixels/axis.PixelsPerValue()
	newMax := newMin + float64(axis.SizePixels())/axis.PixelsPerValue()
	axis.SetMin(newMin)
	axis.SetMax(newMax)
}

// Zoom scales the axis by ZoomConstant^increments, keeping the value under
// pixel in place. Positive increments zoom in. Only the setters are called;
// the caller validates the axis.
func Zoom(axis *Axis1D, increments float64, pixel int) {
	if axis == nil {
		panic("cannot zoom nil axis")
	}
	pos := float64(pixel)
	anchor := axis.ScreenPixelToValue(pos)
	ppv := axis.PixelsPerValue() * math.Pow(ZoomConstant, increments)
	newMin := anchor - pos/ppv
	newMax := newMin + float64(axis.SizePixels())/ppv
	axis.SetMin(newMin)
	axis.SetMax(newMax)
}

// ZoomSelection scales the selected region by ZoomConstant^increments.
func ZoomSelection(axis *Axis1D, increments float64) {
	if axis == nil {
		panic("cannot zoom nil axis")
	}
	axis.SetSelectionSize(axis.SelectionSize() * math.Pow(ZoomConstant, increments))
}

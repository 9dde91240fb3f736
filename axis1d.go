package axes

import (
	"fmt"
	"math"
)

// Listener is notified after an axis has received a broadcast update.
type Listener interface {
	AxisUpdated(axis *Axis1D)
}

type listenerEntry struct {
	l Listener
}

// Axis1D is a numeric range [min…max] mapped onto a pixel extent.
//
// Axes are linked into a hierarchy by parent pointers. Setters never
// propagate; Validate applies the axis constraints and broadcasts the axis
// state up to the topmost linking ancestor and from there down to every
// linked descendant. Link graphs may contain cycles (parents are settable
// at any time); every broadcast updates each reachable axis at most once.
//
// Setting min ≥ max is legal as an intermediate state. Validate resolves it.
type Axis1D struct {
	// linkable state, copied between linked axes
	selectionCenter  float64
	selectionSize    float64
	selectionLocked  bool
	lockMin          bool
	lockMinValue     float64
	lockMax          bool
	lockMaxValue     float64
	constrainMinSpan bool
	minSpan          float64
	constrainMaxSpan bool
	maxSpan          float64
	absoluteMin      float64
	absoluteMax      float64
	min              float64
	max              float64
	pixelsPerValue   float64
	mouseValue       float64
	updateMode       UpdateMode

	// internal state
	minLastValid    float64
	maxLastValid    float64
	sizePixels      int
	initialized     bool
	listeners       []*listenerEntry
	children        []*Axis1D
	parent          *Axis1D
	orthogonal      *Axis1D
	orthogonalRatio float64
	linkChildren    bool
	tagged          *TaggedAxis1D // set iff this is the range part of a tagged axis
}

// NewAxis1D creates an axis spanning [0…10]. If parent is non-nil, the new
// axis is linked to it and receives the parent's state.
func NewAxis1D(parent *Axis1D) *Axis1D {
	a := &Axis1D{}
	a.setDefaults()
	a.SetParent(parent)
	return a
}

func (a *Axis1D) setDefaults() {
	a.selectionCenter = 5.0
	a.selectionSize = 1.0
	a.min, a.max = 0.0, 10.0
	a.pixelsPerValue = 1.0
	a.minLastValid, a.maxLastValid = 0.0, 10.0
	a.updateMode = MinMax
	a.linkChildren = true
	a.absoluteMin = -math.MaxFloat64
	a.absoluteMax = math.MaxFloat64
}

// Clone returns a detached copy of the axis state. Parent, children,
// listeners and aspect-ratio partners are not copied.
func (a *Axis1D) Clone() *Axis1D {
	c := *a
	c.listeners = nil
	c.children = nil
	c.parent = nil
	c.orthogonal = nil
	c.tagged = nil
	return &c
}

func (a *Axis1D) String() string {
	return fmt.Sprintf("[%.3f %.3f %d]", a.min, a.max, a.sizePixels)
}

// === Linking ===============================================================

// SetParent links this axis to a new parent (or unlinks it, for nil).
// The new parent broadcasts its state, so this axis adopts the parent's
// range.
func (a *Axis1D) SetParent(parent *Axis1D) {
	a.setParent(parent, false)
}

// SetParentDuplicate links this axis to a new parent, but broadcasts this
// axis' state instead, so the parent (and its other children) adopt the
// range of this axis.
func (a *Axis1D) SetParentDuplicate(parent *Axis1D) {
	a.setParent(parent, true)
}

func (a *Axis1D) setParent(parent *Axis1D, duplicateChild bool) {
	if a.parent != nil {
		a.parent.removeChild(a)
	}
	a.parent = parent
	if parent != nil {
		parent.addChild(a)
		if !duplicateChild {
			parent.UpdateLinkedAxes()
		}
	}
	if duplicateChild {
		a.UpdateLinkedAxes()
	}
}

func (a *Axis1D) addChild(child *Axis1D) {
	for _, c := range a.children {
		if c == child {
			return
		}
	}
	a.children = append(a.children, child)
}

func (a *Axis1D) removeChild(child *Axis1D) {
	for i, c := range a.children {
		if c == child {
			a.children = append(a.children[:i:i], a.children[i+1:]...)
			return
		}
	}
}

// Parent returns the axis this axis is linked to, or nil.
func (a *Axis1D) Parent() *Axis1D {
	return a.parent
}

// Children returns a copy of the list of axes linked to this axis.
func (a *Axis1D) Children() []*Axis1D {
	return append([]*Axis1D(nil), a.children...)
}

// SetLinkChildren determines whether updates are passed between this axis
// and its children.
func (a *Axis1D) SetLinkChildren(link bool) {
	a.linkChildren = link
}

// LinkChildren is a predicate: are updates passed to children?
func (a *Axis1D) LinkChildren() bool {
	return a.linkChildren
}

// AddListener registers l for broadcast notifications. The returned
// function removes the registration again.
func (a *Axis1D) AddListener(l Listener) (remove func()) {
	entry := &listenerEntry{l: l}
	a.listeners = append(a.listeners, entry)
	return func() {
		for i, e := range a.listeners {
			if e == entry {
				a.listeners = append(a.listeners[:i:i], a.listeners[i+1:]...)
				return
			}
		}
	}
}

// LockAspectRatio keeps the scale of orthogonal at ratio times the scale
// of this axis. The update mode is forced to a scale preserving mode.
func (a *Axis1D) LockAspectRatio(orthogonal *Axis1D, ratio float64) {
	if !a.updateMode.IsScalePreserving() {
		a.updateMode = CenterScale
	}
	a.orthogonal = orthogonal
	a.orthogonalRatio = ratio
}

// UnlockAspectRatio removes an aspect ratio lock.
func (a *Axis1D) UnlockAspectRatio() {
	a.orthogonal = nil
}

// LockedAspectAxis returns the aspect ratio partner, or nil.
func (a *Axis1D) LockedAspectAxis() *Axis1D {
	return a.orthogonal
}

// LockedAspectRatio returns the locked aspect ratio.
func (a *Axis1D) LockedAspectRatio() float64 {
	return a.orthogonalRatio
}

// === Setters ===============================================================

// SetMin sets the lower end of the range. Does not propagate.
func (a *Axis1D) SetMin(value float64) {
	a.min = value
}

// SetMax sets the upper end of the range. Does not propagate.
func (a *Axis1D) SetMax(value float64) {
	a.max = value
}

// SetMaxSpan limits max-min to diff and enables the limit.
func (a *Axis1D) SetMaxSpan(diff float64) {
	a.maxSpan = diff
	a.constrainMaxSpan = true
}

// SetMinSpan forces max-min to at least diff and enables the limit.
func (a *Axis1D) SetMinSpan(diff float64) {
	a.minSpan = diff
	a.constrainMinSpan = true
}

// SetConstrainMaxSpan enables or disables the max span limit.
func (a *Axis1D) SetConstrainMaxSpan(constrain bool) {
	a.constrainMaxSpan = constrain
}

// SetConstrainMinSpan enables or disables the min span limit.
func (a *Axis1D) SetConstrainMinSpan(constrain bool) {
	a.constrainMinSpan = constrain
}

// SetAbsoluteMin sets the lowest value the axis may ever show.
func (a *Axis1D) SetAbsoluteMin(v float64) {
	a.absoluteMin = v
}

// SetAbsoluteMax sets the highest value the axis may ever show.
func (a *Axis1D) SetAbsoluteMax(v float64) {
	a.absoluteMax = v
}

// LockMin pins the lower end of the range to value.
func (a *Axis1D) LockMin(value float64) {
	a.lockMin, a.lockMinValue = true, value
}

// LockMax pins the upper end of the range to value.
func (a *Axis1D) LockMax(value float64) {
	a.lockMax, a.lockMaxValue = true, value
}

// Lock pins both ends of the range to their current values.
func (a *Axis1D) Lock() {
	a.LockMin(a.min)
	a.LockMax(a.max)
}

// Unlock releases both range locks.
func (a *Axis1D) Unlock() {
	a.lockMin, a.lockMax = false, false
}

// UnlockMin releases the lower range lock.
func (a *Axis1D) UnlockMin() {
	a.lockMin = false
}

// UnlockMax releases the upper range lock.
func (a *Axis1D) UnlockMax() {
	a.lockMax = false
}

// SetUpdateMode sets the resize/link policy of the axis.
func (a *Axis1D) SetUpdateMode(mode UpdateMode) {
	a.updateMode = mode
}

// SetSelectionCenter sets the center of the selected region.
func (a *Axis1D) SetSelectionCenter(v float64) {
	a.selectionCenter = v
}

// SetSelectionSize sets the extent of the selected region.
func (a *Axis1D) SetSelectionSize(v float64) {
	a.selectionSize = v
}

// SetSelectionLocked locks the selection against mouse movement.
func (a *Axis1D) SetSelectionLocked(lock bool) {
	a.selectionLocked = lock
}

// SetMouseValue records the axis value under the mouse cursor.
func (a *Axis1D) SetMouseValue(v float64) {
	a.mouseValue = v
}

// SetSizePixels resizes the axis. Sizes ≤ 0 are invalid and ignored.
// The update mode decides how min, max and scale react. The first valid
// size initializes the axis and broadcasts its state.
func (a *Axis1D) SetSizePixels(n int) {
	if n <= 0 {
		return
	}
	a.sizePixels = n
	a.applyUpdateMode()
	a.recalculatePixelsPerValue()
	a.applyConstraints()
	if !a.initialized {
		a.initialized = true
		a.broadcastAxisUpdateUp(a, make(map[*Axis1D]struct{}))
	}
}

// === Getters ===============================================================

// Min returns the lower end of the range.
func (a *Axis1D) Min() float64 { return a.min }

// Max returns the upper end of the range.
func (a *Axis1D) Max() float64 { return a.max }

// MinSpan returns the min span limit.
func (a *Axis1D) MinSpan() float64 { return a.minSpan }

// MaxSpan returns the max span limit.
func (a *Axis1D) MaxSpan() float64 { return a.maxSpan }

// IsMinSpanConstrained is a predicate: is the min span limit enabled?
func (a *Axis1D) IsMinSpanConstrained() bool { return a.constrainMinSpan }

// IsMaxSpanConstrained is a predicate: is the max span limit enabled?
func (a *Axis1D) IsMaxSpanConstrained() bool { return a.constrainMaxSpan }

// AbsoluteMin returns the lower absolute bound.
func (a *Axis1D) AbsoluteMin() float64 { return a.absoluteMin }

// AbsoluteMax returns the upper absolute bound.
func (a *Axis1D) AbsoluteMax() float64 { return a.absoluteMax }

// LockedMin returns the lock value of min and whether it is locked.
func (a *Axis1D) LockedMin() (float64, bool) { return a.lockMinValue, a.lockMin }

// LockedMax returns the lock value of max and whether it is locked.
func (a *Axis1D) LockedMax() (float64, bool) { return a.lockMaxValue, a.lockMax }

// UpdateMode returns the resize/link policy.
func (a *Axis1D) UpdateMode() UpdateMode { return a.updateMode }

// SelectionCenter returns the center of the selected region.
func (a *Axis1D) SelectionCenter() float64 { return a.selectionCenter }

// SelectionSize returns the extent of the selected region.
func (a *Axis1D) SelectionSize() float64 { return a.selectionSize }

// IsSelectionLocked is a predicate.
func (a *Axis1D) IsSelectionLocked() bool { return a.selectionLocked }

// MouseValue returns the axis value under the mouse cursor.
func (a *Axis1D) MouseValue() float64 { return a.mouseValue }

// SizePixels returns the pixel extent of the axis.
func (a *Axis1D) SizePixels() int { return a.sizePixels }

// PixelsPerValue returns the scale of the axis.
func (a *Axis1D) PixelsPerValue() float64 { return a.pixelsPerValue }

// IsInitialized is a predicate: has the axis received a pixel size?
func (a *Axis1D) IsInitialized() bool { return a.initialized }

// ScreenPixelToValue converts a pixel offset into an axis value.
func (a *Axis1D) ScreenPixelToValue(pixel float64) float64 {
	return pixel/a.pixelsPerValue + a.min
}

// ValueToScreenPixel converts an axis value into a whole pixel offset.
func (a *Axis1D) ValueToScreenPixel(value float64) int {
	return int(math.RoundToEven(tweakUp(a.ValueToScreenPixelUnits(value))))
}

// ValueToScreenPixelUnits converts an axis value into a pixel offset.
func (a *Axis1D) ValueToScreenPixelUnits(value float64) float64 {
	return (value - a.min) * a.pixelsPerValue
}

// === Constraints ===========================================================

// Validate applies the axis constraints and broadcasts the axis state to
// all linked axes.
func (a *Axis1D) Validate() {
	a.applyConstraints()
	a.UpdateLinkedAxes()
}

// UpdateLinkedAxes broadcasts the axis state to all linked axes. Axes
// given in ignore are neither updated nor traversed.
func (a *Axis1D) UpdateLinkedAxes(ignore ...*Axis1D) {
	visited := make(map[*Axis1D]struct{}, len(ignore)+1)
	for _, axis := range ignore {
		visited[axis] = struct{}{}
	}
	a.broadcastAxisUpdateUp(a, visited)
}

func (a *Axis1D) applyConstraints() {
	if a.min > a.max {
		a.min, a.max = a.max, a.min
	}
	a.recalculatePixelsPerValue()
	a.applyBoundConstraints()
	a.applySpanConstraints()
	a.applyLockConstraints()
	a.minLastValid, a.maxLastValid = a.min, a.max
}

// Shift the range into [absoluteMin…absoluteMax], keeping its span if
// possible.
func (a *Axis1D) applyBoundConstraints() {
	if a.min < a.absoluteMin {
		a.max += a.absoluteMin - a.min
		a.min = a.absoluteMin
	}
	if a.max > a.absoluteMax {
		a.min -= a.max - a.absoluteMax
		a.max = a.absoluteMax
	}
	if a.min < a.absoluteMin || a.max > a.absoluteMax {
		a.min, a.max = a.absoluteMin, a.absoluteMax
	}
	a.recalculatePixelsPerValue()
}

func (a *Axis1D) applySpanConstraints() {
	diff := a.max - a.min
	center := (a.maxLastValid-a.minLastValid)/2 + a.minLastValid
	if a.constrainMinSpan && diff < a.minSpan {
		a.min = center - a.minSpan/2
		a.max = center + a.minSpan/2
		// rounding may leave the span short, which would make the axis un-pannable
		if d := a.max - a.min; d < a.minSpan {
			a.max += math.Max(ulp(a.max), a.minSpan-d)
		}
	} else if a.constrainMaxSpan && diff > a.maxSpan {
		a.min = center - a.maxSpan/2
		a.max = center + a.maxSpan/2
		if d := a.max - a.min; d > a.maxSpan {
			a.min += math.Max(ulp(a.min), d-a.maxSpan)
		}
	}
	// spans of an aspect ratio partner apply to us as well
	if o := a.orthogonal; o != nil {
		orthoMin := o.minSpan * a.orthogonalRatio
		orthoMax := o.maxSpan * a.orthogonalRatio
		if o.constrainMinSpan && diff < orthoMin {
			a.min, a.max = center-orthoMin/2, center+orthoMin/2
		} else if o.constrainMaxSpan && diff > orthoMax {
			a.min, a.max = center-orthoMax/2, center+orthoMax/2
		}
	}
	a.recalculatePixelsPerValue()
}

func (a *Axis1D) applyLockConstraints() {
	diff := a.max - a.min
	if a.lockMin && a.lockMax {
		a.min, a.max = a.lockMinValue, a.lockMaxValue
	} else if a.lockMin {
		a.min = a.lockMinValue
		a.max = a.min + diff
	} else if a.lockMax {
		a.max = a.lockMaxValue
		a.min = a.max - diff
	}
	a.recalculatePixelsPerValue()
}

// A change in size may change min, max or the scale, depending on the
// update mode.
func (a *Axis1D) applyUpdateMode() {
	if !a.initialized || (a.lockMin && a.lockMax) {
		return
	}
	switch a.updateMode {
	case MinScale:
		if a.lockMax {
			a.recalculateMinValue()
		} else {
			a.recalculateMaxValue()
		}
	case CenterScale:
		if a.lockMax {
			a.recalculateMinValue()
		} else if a.lockMin {
			a.recalculateMaxValue()
		} else {
			a.recalculateMinMaxValue(a.centerValue())
		}
	case MinMax:
		a.recalculatePixelsPerValue()
	case FixedPixel:
		span := a.absoluteMax - a.absoluteMin
		maxPercent := (a.max - a.absoluteMin) / span
		minPercent := (a.min - a.absoluteMin) / span
		size := float64(a.sizePixels)
		a.absoluteMax = a.absoluteMin + size
		if a.lockMax {
			a.min = minPercent*size + a.absoluteMin
		} else if a.lockMin {
			a.max = maxPercent*size + a.absoluteMin
		} else {
			a.min = minPercent*size + a.absoluteMin
			a.max = maxPercent*size + a.absoluteMin
		}
		a.recalculatePixelsPerValue()
	}
}

func (a *Axis1D) recalculateMinValue() {
	a.min = a.max - float64(a.sizePixels)/a.pixelsPerValue
}

func (a *Axis1D) recalculateMaxValue() {
	a.max = a.min + float64(a.sizePixels)/a.pixelsPerValue
}

// Without a pixel size there is no meaningful scale; keep the old one.
func (a *Axis1D) recalculatePixelsPerValue() {
	if a.sizePixels <= 0 {
		return
	}
	a.pixelsPerValue = float64(a.sizePixels) / (a.max - a.min)
}

func (a *Axis1D) recalculateMinMaxValue(center float64) {
	size := float64(a.sizePixels) / a.pixelsPerValue
	a.min = center - size/2
	a.max = center + size/2
}

func (a *Axis1D) centerValue() float64 {
	return (a.max-a.min)/2 + a.min
}

func ulp(x float64) float64 {
	x = math.Abs(x)
	return math.Nextafter(x, math.Inf(1)) - x
}

// === Broadcast =============================================================

// broadcastRoot walks up the chain of parents until it reaches an axis
// whose parent does not link its children. stop may end the climb early at
// a parent, which then becomes the root. A cyclic parent chain ends the climb
// at the last axis before the cycle closes.
func (a *Axis1D) broadcastRoot(stop func(parent *Axis1D) bool) *Axis1D {
	climbed := map[*Axis1D]struct{}{a: {}}
	node := a
	for {
		p := node.parent
		if p == nil || !p.linkChildren {
			return node
		}
		if _, seen := climbed[p]; seen {
			return node
		}
		if stop != nil && stop(p) {
			return p
		}
		climbed[p] = struct{}{}
		node = p
	}
}

func (a *Axis1D) broadcastAxisUpdateUp(source *Axis1D, visited map[*Axis1D]struct{}) {
	root := a.broadcastRoot(nil)
	tracer().Debugf("broadcast axis update from %v, root is %v", source, root)
	root.axisUpdated(source, visited)
}

// axisUpdated recursively applies an update to this axis and all linked
// children. Every axis is updated at most once per visited set.
func (a *Axis1D) axisUpdated(source *Axis1D, visited map[*Axis1D]struct{}) {
	if _, ok := visited[a]; ok {
		return
	}
	visited[a] = struct{}{}
	a.axisUpdated0(source)
	if a.tagged != nil {
		a.tagged.tagsUpdatedFrom(source)
	}
	a.updateOrthogonalAspectRatio(visited)
	if a.linkChildren {
		for _, child := range a.Children() {
			child.axisUpdated(source, visited)
		}
	}
	for _, e := range append([]*listenerEntry(nil), a.listeners...) {
		e.l.AxisUpdated(a)
	}
}

// axisUpdated0 copies the linkable state of source into this axis.
func (a *Axis1D) axisUpdated0(source *Axis1D) {
	a.updateMode = source.updateMode
	a.mouseValue = source.mouseValue
	a.minSpan, a.maxSpan = source.minSpan, source.maxSpan
	a.constrainMinSpan, a.constrainMaxSpan = source.constrainMinSpan, source.constrainMaxSpan
	a.lockMin, a.lockMax = source.lockMin, source.lockMax
	a.lockMinValue, a.lockMaxValue = source.lockMinValue, source.lockMaxValue
	a.absoluteMin, a.absoluteMax = source.absoluteMin, source.absoluteMax
	a.selectionCenter = source.selectionCenter
	a.selectionSize = source.selectionSize
	a.selectionLocked = source.selectionLocked
	if !a.initialized {
		// no pixel size yet: copy without making the range self-consistent
		a.min, a.max = source.min, source.max
		a.pixelsPerValue = source.pixelsPerValue
		return
	}
	switch a.updateMode {
	case MinScale:
		a.min = source.min
		a.pixelsPerValue = source.pixelsPerValue
		a.recalculateMaxValue()
		a.applyConstraints()
	case CenterScale:
		a.pixelsPerValue = source.pixelsPerValue
		a.recalculateMinMaxValue(source.centerValue())
		a.applyConstraints()
	case MinMax:
		a.min, a.max = source.min, source.max
		a.recalculatePixelsPerValue()
		a.applyConstraints()
	case FixedPixel:
	}
}

func (a *Axis1D) updateOrthogonalAspectRatio(visited map[*Axis1D]struct{}) {
	o := a.orthogonal
	if o == nil || !o.initialized {
		return
	}
	oldPPV := o.pixelsPerValue
	newPPV := a.pixelsPerValue * a.orthogonalRatio
	o.min = o.recenterMinValue(float64(o.sizePixels)/2, oldPPV, newPPV)
	o.pixelsPerValue = newPPV
	o.recalculateMaxValue()
	o.applyConstraints()
	o.broadcastAxisUpdateUp(o, visited)
}

// recenterMinValue returns the new min for a change of scale, zooming
// around a locked end or around the given pixel.
func (a *Axis1D) recenterMinValue(centerPixels, oldPPV, newPPV float64) float64 {
	var zoomValue, zoomPixels float64
	switch {
	case a.lockMax:
		zoomValue, zoomPixels = a.max, float64(a.sizePixels)
	case a.lockMin:
		zoomValue, zoomPixels = a.min, 0
	default:
		zoomPixels = centerPixels
		zoomValue = zoomPixels/oldPPV + a.min
	}
	return zoomValue - zoomPixels/newPPV
}

package axes

import (
	"math/rand"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingListener struct {
	count map[*Axis1D]int
}

func (l *countingListener) AxisUpdated(axis *Axis1D) {
	l.count[axis]++
}

func newCounter(axes ...*Axis1D) *countingListener {
	l := &countingListener{count: make(map[*Axis1D]int)}
	for _, a := range axes {
		a.AddListener(l)
	}
	return l
}

func sizedAxis(min, max float64, size int) *Axis1D {
	a := NewAxis1D(nil)
	a.SetMin(min)
	a.SetMax(max)
	a.SetSizePixels(size)
	return a
}

func TestAxisDefaults(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := NewAxis1D(nil)
	assert.Equal(t, 0.0, a.Min())
	assert.Equal(t, 10.0, a.Max())
	assert.Equal(t, MinMax, a.UpdateMode())
	assert.False(t, a.IsInitialized())
	a.SetSizePixels(100)
	assert.True(t, a.IsInitialized())
	assert.InDelta(t, 10.0, a.PixelsPerValue(), 1e-12)
	assert.Equal(t, "[0.000 10.000 100]", a.String())
}

func TestSetSizePixelsIgnoresZero(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := sizedAxis(0, 10, 100)
	a.SetSizePixels(0)
	a.SetSizePixels(-3)
	assert.Equal(t, 100, a.SizePixels())
}

func TestSettersDoNotPropagate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	parent := sizedAxis(0, 10, 100)
	child := NewAxis1D(parent)
	parent.SetMin(20)
	parent.SetMax(5) // intermediate state, legal
	assert.Equal(t, 0.0, child.Min())
	assert.Equal(t, 10.0, child.Max())
}

func TestValidateSwapsReversedRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := sizedAxis(0, 10, 100)
	a.SetMin(8)
	a.SetMax(2)
	a.Validate()
	assert.Equal(t, 2.0, a.Min())
	assert.Equal(t, 8.0, a.Max())
	assert.InDelta(t, 100.0/6.0, a.PixelsPerValue(), 1e-9)
}

func TestValidateMaxSpan(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := sizedAxis(0, 10, 100)
	a.SetMaxSpan(4)
	a.Validate()
	assert.LessOrEqual(t, a.Max()-a.Min(), 4.0)
	assert.InDelta(t, 5.0, (a.Max()+a.Min())/2, 1e-9, "span limit keeps the center")
	assert.InDelta(t, 100.0/(a.Max()-a.Min()), a.PixelsPerValue(), 1e-9)
}

func TestValidateMinSpan(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := sizedAxis(0, 10, 100)
	a.SetMinSpan(20)
	a.Validate()
	assert.GreaterOrEqual(t, a.Max()-a.Min(), 20.0)
}

func TestRangeInvariantHolds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	rnd := rand.New(rand.NewSource(7))
	a := sizedAxis(0, 10, 400)
	for i := 0; i < 500; i++ {
		switch rnd.Intn(3) {
		case 0:
			a.SetMin(rnd.Float64()*2000 - 1000)
		case 1:
			a.SetMax(rnd.Float64()*2000 - 1000)
		case 2:
			a.SetMaxSpan(rnd.Float64()*100 + 0.001)
		}
		if rnd.Intn(2) == 0 {
			continue
		}
		a.Validate()
		require.LessOrEqual(t, a.Min(), a.Max(), "step %d: %v", i, a)
		if a.IsMaxSpanConstrained() {
			require.LessOrEqual(t, a.Max()-a.Min(), a.MaxSpan(), "step %d: %v", i, a)
		}
	}
}

func TestValidateWithoutPixelSize(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := NewAxis1D(nil)
	a.SetMin(5)
	a.SetMax(-5)
	a.SetMaxSpan(2)
	a.Validate()
	assert.LessOrEqual(t, a.Min(), a.Max())
	assert.LessOrEqual(t, a.Max()-a.Min(), 2.0)
}

func TestAbsoluteBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := sizedAxis(0, 10, 100)
	a.SetAbsoluteMin(-1)
	a.SetAbsoluteMax(100)
	a.SetMin(-6)
	a.SetMax(4)
	a.Validate()
	assert.Equal(t, -1.0, a.Min())
	assert.Equal(t, 9.0, a.Max())
	a.SetMin(-50)
	a.SetMax(500)
	a.Validate()
	assert.Equal(t, -1.0, a.Min())
	assert.Equal(t, 100.0, a.Max())
}

func TestLocks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := sizedAxis(0, 10, 100)
	a.LockMin(1)
	a.SetMin(3)
	a.SetMax(7)
	a.Validate()
	assert.Equal(t, 1.0, a.Min())
	assert.Equal(t, 5.0, a.Max())
	v, locked := a.LockedMin()
	assert.True(t, locked)
	assert.Equal(t, 1.0, v)
	a.Unlock()
	a.SetMin(3)
	a.Validate()
	assert.Equal(t, 3.0, a.Min())
}

func TestResizeUpdateModes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := NewAxis1D(nil)
	a.SetUpdateMode(MinScale)
	a.SetSizePixels(100)
	a.SetSizePixels(200)
	assert.InDelta(t, 0.0, a.Min(), 1e-9)
	assert.InDelta(t, 20.0, a.Max(), 1e-9)
	assert.InDelta(t, 10.0, a.PixelsPerValue(), 1e-9)

	b := NewAxis1D(nil)
	b.SetUpdateMode(CenterScale)
	b.SetSizePixels(100)
	b.SetSizePixels(200)
	assert.InDelta(t, -5.0, b.Min(), 1e-9)
	assert.InDelta(t, 15.0, b.Max(), 1e-9)

	c := NewAxis1D(nil)
	c.SetSizePixels(100)
	c.SetSizePixels(200)
	assert.InDelta(t, 0.0, c.Min(), 1e-9)
	assert.InDelta(t, 10.0, c.Max(), 1e-9)
	assert.InDelta(t, 20.0, c.PixelsPerValue(), 1e-9)
}

func TestPixelConversion(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := sizedAxis(10, 20, 100)
	assert.InDelta(t, 15.0, a.ScreenPixelToValue(50), 1e-9)
	assert.InDelta(t, 50.0, a.ValueToScreenPixelUnits(15), 1e-9)
	assert.Equal(t, 50, a.ValueToScreenPixel(15))
	assert.Equal(t, 100, a.ValueToScreenPixel(20))
}

func TestChildAdoptsParentRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	parent := sizedAxis(0, 10, 100)
	child := NewAxis1D(parent)
	child.SetSizePixels(200)
	parent.SetMin(2)
	parent.SetMax(4)
	parent.Validate()
	assert.Equal(t, 2.0, child.Min())
	assert.Equal(t, 4.0, child.Max())
	assert.InDelta(t, 100.0, child.PixelsPerValue(), 1e-9)
	// updates from the child travel up and back down to siblings
	sibling := NewAxis1D(parent)
	child.SetMin(1)
	child.SetMax(3)
	child.Validate()
	assert.Equal(t, 1.0, parent.Min())
	assert.Equal(t, 3.0, sibling.Max())
}

func TestUnlinkedChildrenKeepRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	parent := sizedAxis(0, 10, 100)
	child := NewAxis1D(parent)
	parent.SetLinkChildren(false)
	parent.SetMax(50)
	parent.Validate()
	assert.Equal(t, 10.0, child.Max())
	child.SetParent(nil)
	assert.Empty(t, parent.Children())
	assert.Nil(t, child.Parent())
}

func TestSetParentDuplicate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	parent := sizedAxis(0, 10, 100)
	child := sizedAxis(30, 40, 100)
	child.SetParentDuplicate(parent)
	assert.Equal(t, 30.0, parent.Min())
	assert.Equal(t, 40.0, parent.Max())
}

func TestBroadcastTree(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	root := sizedAxis(0, 10, 100)
	a := NewAxis1D(root)
	b := NewAxis1D(root)
	c := NewAxis1D(a)
	counter := newCounter(root, a, b, c)
	c.SetMax(12)
	c.Validate()
	for _, axis := range []*Axis1D{root, a, b, c} {
		assert.Equal(t, 1, counter.count[axis], "axis %v", axis)
		assert.Equal(t, 12.0, axis.Max())
	}
}

func TestBroadcastCycleTerminates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := sizedAxis(0, 10, 100)
	b := sizedAxis(0, 10, 100)
	c := sizedAxis(0, 10, 100)
	a.SetParent(b)
	b.SetParent(c)
	c.SetParent(a) // closes the cycle
	counter := newCounter(a, b, c)
	for _, axis := range []*Axis1D{a, b, c} {
		counter.count = make(map[*Axis1D]int)
		axis.SetMin(1)
		axis.SetMax(2)
		axis.Validate()
		for _, other := range []*Axis1D{a, b, c} {
			assert.Equal(t, 1, counter.count[other])
			assert.Equal(t, 2.0, other.Max())
		}
	}
}

func TestSelfParentTerminates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := sizedAxis(0, 10, 100)
	a.SetParent(a)
	counter := newCounter(a)
	a.Validate()
	assert.Equal(t, 1, counter.count[a])
}

func TestUpdateLinkedAxesIgnore(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	root := sizedAxis(0, 10, 100)
	a := NewAxis1D(root)
	b := NewAxis1D(root)
	root.SetMax(30)
	root.applyConstraints()
	root.UpdateLinkedAxes(b)
	assert.Equal(t, 30.0, a.Max())
	assert.Equal(t, 10.0, b.Max())
}

func TestListenerRemoval(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := sizedAxis(0, 10, 100)
	counter := &countingListener{count: make(map[*Axis1D]int)}
	remove := a.AddListener(counter)
	a.Validate()
	remove()
	a.Validate()
	assert.Equal(t, 1, counter.count[a])
}

func TestCloneIsDetached(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	parent := sizedAxis(0, 10, 100)
	a := NewAxis1D(parent)
	a.SetMaxSpan(50)
	c := a.Clone()
	assert.Nil(t, c.Parent())
	assert.Empty(t, c.Children())
	assert.Equal(t, a.Min(), c.Min())
	assert.Equal(t, a.Max(), c.Max())
	assert.True(t, c.IsMaxSpanConstrained())
	c.SetMax(20)
	c.Validate()
	assert.Equal(t, 10.0, parent.Max())
	assert.Len(t, parent.Children(), 1)
}

func TestAspectRatioLock(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	xy := NewAxis2D()
	xy.SetSizePixels(100, 100)
	xy.LockAspectRatio(1)
	xy.X().SetMin(0)
	xy.X().SetMax(5)
	xy.X().Validate()
	assert.InDelta(t, xy.X().PixelsPerValue(), xy.Y().PixelsPerValue(), 1e-9)
	assert.InDelta(t, 5.0, xy.Y().Max()-xy.Y().Min(), 1e-9)
}

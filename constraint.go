package axes

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTag indicates a constraint refers to a tag the axis does not carry.
	ErrUnknownTag = errors.New("unknown tag")
	// ErrNilConstraint indicates a nil constraint was attached to an axis.
	ErrNilConstraint = errors.New("constraint must not be nil")
)

// Constraint is a rule which is applied to the tags of a TaggedAxis1D
// every time the tags are validated. A constraint may move tags (via
// Tag.SetValue) to re-establish its rule. Constraints are identified by
// name within an axis.
type Constraint interface {
	Name() string
	ApplyConstraint(axis *TaggedAxis1D) error
}

// constraintCloner is implemented by constraints carrying state which must
// not be shared between an axis and its clone.
type constraintCloner interface {
	CloneConstraint() Constraint
}

// SnapshotFunc is the body of a NamedConstraint. It receives the tag values
// as they were after the previous application of the constraint.
type SnapshotFunc func(axis *TaggedAxis1D, previous map[string]float64) error

// NamedConstraint is a constraint which remembers the tag values as they
// were after its last application, letting the constraint body find out
// which tags moved, and in which direction. On first application the
// snapshot is seeded from the current tags, i.e. nothing appears to have
// moved.
type NamedConstraint struct {
	name     string
	body     SnapshotFunc
	previous map[string]float64
}

// NewNamedConstraint creates a snapshot based constraint.
func NewNamedConstraint(name string, body SnapshotFunc) *NamedConstraint {
	return &NamedConstraint{name: name, body: body}
}

// Name returns the identifying name of the constraint.
func (c *NamedConstraint) Name() string {
	return c.name
}

// ApplyConstraint runs the constraint body against the previous snapshot,
// then snapshots the corrected tags.
func (c *NamedConstraint) ApplyConstraint(axis *TaggedAxis1D) error {
	if c.previous == nil {
		c.previous = axis.tagValues()
	}
	err := c.body(axis, c.previous)
	c.previous = axis.tagValues()
	return err
}

// CloneConstraint returns a copy without snapshot.
func (c *NamedConstraint) CloneConstraint() Constraint {
	return NewNamedConstraint(c.name, c.body)
}

// === Ordered Constraint ====================================================

// OrderedConstraint keeps a list of tags in strictly ascending order, with
// a minimum distance of buffer between neighbours.
//
// If a tag is dragged across a neighbour, the neighbour (and every tag
// further along) is pushed ahead of it. When several tags moved since the
// last application, a single driver tag is chosen: the tag moved furthest
// upwards, scanning forward so that later tags win ties, competes with the
// tag moved furthest downwards, scanning backward so that earlier tags win
// ties; the larger move wins, an upward move wins a tie. The result of
// simultaneous moves therefore depends on the scan order, not only on the
// final tag values.
type OrderedConstraint struct {
	*NamedConstraint
	buffer   float64
	tagNames []string
}

// NewOrderedConstraint creates an ordering constraint over tagNames, given
// in ascending order.
func NewOrderedConstraint(name string, buffer float64, tagNames []string) *OrderedConstraint {
	c := &OrderedConstraint{
		buffer:   buffer,
		tagNames: append([]string(nil), tagNames...),
	}
	c.NamedConstraint = NewNamedConstraint(name, c.applyOrdered)
	return c
}

// Buffer returns the minimum distance between neighbouring tags.
func (c *OrderedConstraint) Buffer() float64 {
	return c.buffer
}

// TagNames returns the ordered list of constrained tag names.
func (c *OrderedConstraint) TagNames() []string {
	return append([]string(nil), c.tagNames...)
}

// CloneConstraint returns a copy without snapshot.
func (c *OrderedConstraint) CloneConstraint() Constraint {
	return NewOrderedConstraint(c.name, c.buffer, c.tagNames)
}

func (c *OrderedConstraint) applyOrdered(axis *TaggedAxis1D, previous map[string]float64) error {
	tags := make([]*Tag, len(c.tagNames))
	for i, name := range c.tagNames {
		tag, ok := axis.Tag(name)
		if !ok {
			return fmt.Errorf("%w: constraint %q references tag %q", ErrUnknownTag, c.name, name)
		}
		tags[i] = tag
	}
	if len(tags) < 2 {
		return nil
	}
	driver, increased := c.findDriver(tags, previous)
	switch {
	case driver < 0:
		c.pushUp(tags, 0)
	case increased:
		tracer().Debugf("constraint %s: %v moved up", c.name, tags[driver])
		c.pushUp(tags, driver)
		c.pushDown(tags, driver)
	default:
		tracer().Debugf("constraint %s: %v moved down", c.name, tags[driver])
		c.pushDown(tags, driver)
		c.pushUp(tags, driver)
	}
	return nil
}

// findDriver returns the index of the tag which caused the re-ordering, or
// -1 if no tag moved.
func (c *OrderedConstraint) findDriver(tags []*Tag, previous map[string]float64) (int, bool) {
	up, upDelta := -1, 0.0
	for i, tag := range tags {
		prev, ok := previous[tag.name]
		if !ok {
			continue
		}
		if d := tag.value - prev; d > 0 && d >= upDelta {
			up, upDelta = i, d
		}
	}
	down, downDelta := -1, 0.0
	for i := len(tags) - 1; i >= 0; i-- {
		prev, ok := previous[tags[i].name]
		if !ok {
			continue
		}
		if d := prev - tags[i].value; d > 0 && d >= downDelta {
			down, downDelta = i, d
		}
	}
	if up >= 0 && (down < 0 || upDelta >= downDelta) {
		return up, true
	}
	return down, false
}

// pushUp ensures tag[i+1] ≥ tag[i] + buffer for all i ≥ from.
func (c *OrderedConstraint) pushUp(tags []*Tag, from int) {
	for i := from + 1; i < len(tags); i++ {
		if limit := tags[i-1].value + c.buffer; tags[i].value < limit {
			tags[i].SetValue(limit)
		}
	}
}

// pushDown ensures tag[i-1] ≤ tag[i] - buffer for all i ≤ from.
func (c *OrderedConstraint) pushDown(tags []*Tag, from int) {
	for i := from - 1; i >= 0; i-- {
		if limit := tags[i+1].value - c.buffer; tags[i].value > limit {
			tags[i].SetValue(limit)
		}
	}
}

// === Window Constraint =====================================================

// WindowConstraint keeps a selection window consistent: the lower tag
// never exceeds the upper tag, and the current tag stays within both.
type WindowConstraint struct {
	name                   string
	minTag, maxTag, curTag string
}

// NewWindowConstraint creates a window constraint over three tags.
func NewWindowConstraint(name, minTag, maxTag, currentTag string) *WindowConstraint {
	return &WindowConstraint{name: name, minTag: minTag, maxTag: maxTag, curTag: currentTag}
}

// Name returns the identifying name of the constraint.
func (c *WindowConstraint) Name() string {
	return c.name
}

// ApplyConstraint clamps the window tags.
func (c *WindowConstraint) ApplyConstraint(axis *TaggedAxis1D) error {
	var tags [3]*Tag
	for i, name := range []string{c.minTag, c.maxTag, c.curTag} {
		tag, ok := axis.Tag(name)
		if !ok {
			return fmt.Errorf("%w: constraint %q references tag %q", ErrUnknownTag, c.name, name)
		}
		tags[i] = tag
	}
	lo, hi, cur := tags[0], tags[1], tags[2]
	if lo.Value() > hi.Value() {
		lo.SetValue(hi.Value())
	}
	if cur.Value() < lo.Value() {
		cur.SetValue(lo.Value())
	} else if cur.Value() > hi.Value() {
		cur.SetValue(hi.Value())
	}
	return nil
}

package axes

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// TagListener may be implemented by a Listener registered on a tagged axis;
// it is then notified after the tags of the axis changed.
type TagListener interface {
	TagsUpdated(axis *TaggedAxis1D)
}

// TaggedAxis1D is an Axis1D carrying named tags and constraints on them.
//
// Every public mutator applies all constraints (once each, in attachment
// order) before it returns, so SortedTags never exposes values a
// constraint has not yet seen. With tag linking enabled, tag values
// are passed by name to linked tagged axes which have tag linking enabled
// as well; tags only known to the receiving axis are left alone.
type TaggedAxis1D struct {
	*Axis1D
	tags        *treemap.Map       // name → *Tag
	constraints *linkedhashmap.Map // name → Constraint, in attachment order
	sortedTags  []*Tag
	linkTags    bool
}

// NewTaggedAxis1D creates a tagged axis spanning [0…10], optionally linked
// to parent.
func NewTaggedAxis1D(parent *Axis1D) *TaggedAxis1D {
	base := &Axis1D{}
	base.setDefaults()
	t := newTagged(base)
	base.SetParent(parent)
	return t
}

func newTagged(base *Axis1D) *TaggedAxis1D {
	t := &TaggedAxis1D{
		Axis1D:      base,
		tags:        treemap.NewWithStringComparator(),
		constraints: linkedhashmap.New(),
		linkTags:    true,
	}
	base.tagged = t
	return t
}

// Clone returns a detached copy of the axis. Tags are deep-copied,
// constraints are copied without their snapshots.
func (t *TaggedAxis1D) Clone() *TaggedAxis1D {
	c := newTagged(t.Axis1D.Clone())
	c.linkTags = t.linkTags
	it := t.tags.Iterator()
	for it.Next() {
		c.tags.Put(it.Key(), it.Value().(*Tag).Clone())
	}
	for _, v := range t.constraints.Values() {
		con := v.(Constraint)
		if cloner, ok := con.(constraintCloner); ok {
			con = cloner.CloneConstraint()
		}
		c.constraints.Put(con.Name(), con)
	}
	c.updateSortedTags()
	return c
}

// SetLinkTags determines whether tag values are exchanged with linked
// tagged axes.
func (t *TaggedAxis1D) SetLinkTags(link bool) {
	t.linkTags = link
}

// LinkTags is a predicate: are tags exchanged with linked axes?
func (t *TaggedAxis1D) LinkTags() bool {
	return t.linkTags
}

// === Tags ==================================================================

// AddTag creates a tag and validates the tags of the axis. An existing tag
// of the same name is replaced.
func (t *TaggedAxis1D) AddTag(name string, value float64) (*Tag, error) {
	tag := NewTag(name, value)
	return tag, t.PutTag(tag)
}

// PutTag adds a tag, replacing an existing tag of the same name, and
// validates the tags of the axis.
func (t *TaggedAxis1D) PutTag(tag *Tag) error {
	t.tags.Put(tag.Name(), tag)
	return t.ValidateTags()
}

// RemoveTag removes a tag (if present) and validates the tags of the axis.
func (t *TaggedAxis1D) RemoveTag(name string) error {
	t.tags.Remove(name)
	return t.ValidateTags()
}

// Tag returns the tag with the given name.
func (t *TaggedAxis1D) Tag(name string) (*Tag, bool) {
	v, ok := t.tags.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Tag), true
}

// TagCount returns the number of tags.
func (t *TaggedAxis1D) TagCount() int {
	return t.tags.Size()
}

// SortedTags returns the tags in ascending order of value. Tags of equal
// value are ordered by name. The returned slice is a copy.
func (t *TaggedAxis1D) SortedTags() []*Tag {
	return append([]*Tag(nil), t.sortedTags...)
}

func (t *TaggedAxis1D) tagValues() map[string]float64 {
	values := make(map[string]float64, t.tags.Size())
	it := t.tags.Iterator()
	for it.Next() {
		values[it.Key().(string)] = it.Value().(*Tag).value
	}
	return values
}

func (t *TaggedAxis1D) updateSortedTags() {
	values := t.tags.Values()
	utils.Sort(values, compareTags)
	t.sortedTags = t.sortedTags[:0]
	for _, v := range values {
		t.sortedTags = append(t.sortedTags, v.(*Tag))
	}
}

// === Constraints ===========================================================

// AddConstraint attaches a constraint, replacing an existing constraint of
// the same name, and validates the tags of the axis.
func (t *TaggedAxis1D) AddConstraint(c Constraint) error {
	if c == nil {
		return ErrNilConstraint
	}
	t.constraints.Put(c.Name(), c)
	return t.ValidateTags()
}

// RemoveConstraint detaches a constraint (if present) and validates the
// tags of the axis.
func (t *TaggedAxis1D) RemoveConstraint(name string) error {
	t.constraints.Remove(name)
	return t.ValidateTags()
}

// Constraint returns the constraint with the given name.
func (t *TaggedAxis1D) Constraint(name string) (Constraint, bool) {
	v, ok := t.constraints.Get(name)
	if !ok {
		return nil, false
	}
	return v.(Constraint), true
}

// Constraints returns the constraints in attachment order.
func (t *TaggedAxis1D) Constraints() []Constraint {
	values := t.constraints.Values()
	cs := make([]Constraint, len(values))
	for i, v := range values {
		cs[i] = v.(Constraint)
	}
	return cs
}

// applyTagConstraints runs every constraint once. The first failing
// constraint aborts the pass.
func (t *TaggedAxis1D) applyTagConstraints() error {
	for _, c := range t.Constraints() {
		if err := c.ApplyConstraint(t); err != nil {
			tracer().Errorf("constraint %s failed: %v", c.Name(), err)
			return err
		}
	}
	return nil
}

// === Validation ============================================================

// ValidateTags applies all constraints, refreshes the sorted tag list and
// passes the tag values on to linked tagged axes. Errors of constraints
// are returned, the tag list is refreshed nevertheless.
func (t *TaggedAxis1D) ValidateTags() error {
	err := t.applyTagConstraints()
	t.updateSortedTags()
	t.broadcastTags()
	return err
}

// Validate applies tag constraints and axis constraints and broadcasts
// range and tags to all linked axes.
func (t *TaggedAxis1D) Validate() error {
	err := t.applyTagConstraints()
	t.updateSortedTags()
	t.Axis1D.Validate()
	return err
}

// === Tag Broadcast =========================================================

// broadcastTags climbs the link hierarchy up to the first ancestor which
// does not link its tags, then passes the tag values of this axis down to
// every linked tagged axis.
func (t *TaggedAxis1D) broadcastTags() {
	if !t.linkTags {
		t.notifyTagListeners()
		return
	}
	root := t.broadcastRoot(func(parent *Axis1D) bool {
		return parent.tagged != nil && !parent.tagged.linkTags
	})
	tracer().Debugf("broadcast tags from %v, root is %v", t.Axis1D, root)
	tagsUpdated(root, t, make(map[*Axis1D]struct{}))
}

func tagsUpdated(a *Axis1D, source *TaggedAxis1D, visited map[*Axis1D]struct{}) {
	if _, ok := visited[a]; ok {
		return
	}
	visited[a] = struct{}{}
	if a.tagged != nil {
		a.tagged.tagsUpdatedFrom(source.Axis1D)
		a.tagged.notifyTagListeners()
	}
	if a.linkChildren {
		for _, child := range a.Children() {
			tagsUpdated(child, source, visited)
		}
	}
}

// tagsUpdatedFrom copies the values of tags known to both axes from source.
func (t *TaggedAxis1D) tagsUpdatedFrom(source *Axis1D) {
	if source == nil || source.tagged == nil || source.tagged == t {
		return
	}
	if !t.linkTags || !source.tagged.linkTags {
		return
	}
	it := source.tagged.tags.Iterator()
	for it.Next() {
		if mine, ok := t.Tag(it.Key().(string)); ok {
			mine.SetValue(it.Value().(*Tag).value)
		}
	}
	t.updateSortedTags()
}

func (t *TaggedAxis1D) notifyTagListeners() {
	for _, e := range append([]*listenerEntry(nil), t.listeners...) {
		if tl, ok := e.l.(TagListener); ok {
			tl.TagsUpdated(t)
		}
	}
}

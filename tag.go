package axes

import "fmt"

// Well-known tag attribute keys.
const (
	// TexCoordAttr holds the relative (0…1) position along a color scale a
	// tag is attached to.
	TexCoordAttr = "TexCoord"
	// TagColorAttr holds the display color of a tag.
	TagColorAttr = "TagColor"
)

// Tag is a named marker on a TaggedAxis1D.
//
// Tags are identified by name only: two tags with the same name are the
// same tag, whatever their values. Setting a value has no side effects;
// constraints are enforced by the owning axis when its tags are validated.
type Tag struct {
	name  string
	value float64
	attrs map[string]any
}

// NewTag creates a detached tag.
func NewTag(name string, value float64) *Tag {
	return &Tag{name: name, value: value}
}

// Name returns the identifying name of the tag.
func (t *Tag) Name() string {
	return t.name
}

// Value returns the axis value the tag is placed at.
func (t *Tag) Value() float64 {
	return t.value
}

// SetValue moves the tag. Callers must validate the owning axis' tags
// afterwards.
func (t *Tag) SetValue(v float64) {
	t.value = v
}

// Attribute returns the attribute stored under key.
func (t *Tag) Attribute(key string) (any, bool) {
	v, ok := t.attrs[key]
	return v, ok
}

// SetAttribute stores an attribute. Part of builder functionality.
func (t *Tag) SetAttribute(key string, v any) *Tag {
	if t.attrs == nil {
		t.attrs = make(map[string]any)
	}
	t.attrs[key] = v
	return t
}

// Attributes returns a copy of all attributes of the tag.
func (t *Tag) Attributes() map[string]any {
	attrs := make(map[string]any, len(t.attrs))
	for k, v := range t.attrs {
		attrs[k] = v
	}
	return attrs
}

// Equal compares tags by name.
func (t *Tag) Equal(other *Tag) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.name == other.name
}

// Clone returns a copy of the tag with its own attribute map.
func (t *Tag) Clone() *Tag {
	c := &Tag{name: t.name, value: t.value}
	if t.attrs != nil {
		c.attrs = t.Attributes()
	}
	return c
}

func (t *Tag) String() string {
	return fmt.Sprintf("%s=%g", t.name, t.value)
}

// compareTags orders tags by value, ties broken by name.
func compareTags(a, b interface{}) int {
	t1, t2 := a.(*Tag), b.(*Tag)
	switch {
	case t1.value < t2.value:
		return -1
	case t1.value > t2.value:
		return 1
	case t1.name < t2.name:
		return -1
	case t1.name > t2.name:
		return 1
	}
	return 0
}

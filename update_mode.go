package axes

// UpdateMode determines how an axis reacts to a change of its pixel size
// and to the state broadcast from a linked axis.
type UpdateMode int

const (
	// MinMax keeps min and max and adjusts the scale.
	MinMax UpdateMode = iota
	// MinScale keeps min and the scale and adjusts max.
	MinScale
	// CenterScale keeps the center and the scale and adjusts min and max.
	CenterScale
	// FixedPixel keeps one axis value per pixel relative to the absolute
	// bounds of the axis.
	FixedPixel
)

// IsScalePreserving is a predicate: does a resize keep pixelsPerValue?
func (m UpdateMode) IsScalePreserving() bool {
	return m == MinScale || m == CenterScale
}

func (m UpdateMode) String() string {
	switch m {
	case MinMax:
		return "MinMax"
	case MinScale:
		return "MinScale"
	case CenterScale:
		return "CenterScale"
	case FixedPixel:
		return "FixedPixel"
	}
	return "UpdateMode(?)"
}
